package tenant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s is a well-formed public slug: lower-case
// alphanumeric runs separated by single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify lowers a business name into slug form, dropping everything that
// is not alphanumeric and collapsing separators into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Slugger allocates slugs unique across the directory by suffixing a
// counter when the base slug is already taken.
type Slugger struct {
	dir Directory
}

// NewSlugger builds a Slugger over the given directory.
func NewSlugger(dir Directory) *Slugger {
	return &Slugger{dir: dir}
}

// UniqueSlug derives a slug from the business name and guarantees it does
// not collide with an existing tenant.
func (s *Slugger) UniqueSlug(ctx context.Context, businessName string) (string, error) {
	base := Slugify(businessName)
	if base == "" {
		return "", fmt.Errorf("%w: business name yields empty slug", ErrInvalidInput)
	}
	candidate := base
	for counter := 1; ; counter++ {
		_, err := s.dir.FindBySlug(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
