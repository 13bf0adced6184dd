// Package qr renders the QR code that links a printed table card to a
// tenant's public menu page.
package qr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 500

// Generator renders QR codes for tenant menu URLs.
type Generator interface {
	Generate(ctx context.Context, tenantID, slug string) (string, error)
	DataURL(ctx context.Context, slug string) (string, error)
	Remove(tenantID string) error
}

// FileGenerator writes QR PNGs under a local directory and reports them as
// URLs relative to the upload root.
type FileGenerator struct {
	// baseURL is the public origin the QR code points at, e.g.
	// "https://menuqr.app".
	baseURL string
	// dir is where PNG files land, e.g. "uploads/qr-codes".
	dir string
}

var _ Generator = (*FileGenerator)(nil)

// NewFileGenerator builds a FileGenerator.
func NewFileGenerator(baseURL, dir string) *FileGenerator {
	return &FileGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
	}
}

// Generate renders the tenant's menu QR to disk and returns its URL path.
func (g *FileGenerator) Generate(ctx context.Context, tenantID, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if tenantID == "" || slug == "" {
		return "", fmt.Errorf("qr: tenant id and slug are required")
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("qr: create directory: %w", err)
	}
	path := filepath.Join(g.dir, tenantID+".png")
	if err := qrcode.WriteFile(g.menuURL(slug), qrcode.Medium, imageSize, path); err != nil {
		return "", fmt.Errorf("qr: render: %w", err)
	}
	return "/uploads/qr-codes/" + tenantID + ".png", nil
}

// DataURL renders the menu QR inline as a base64 PNG data URL.
func (g *FileGenerator) DataURL(ctx context.Context, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	png, err := qrcode.Encode(g.menuURL(slug), qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("qr: render: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Remove deletes the rendered QR file for a tenant, if any.
func (g *FileGenerator) Remove(tenantID string) error {
	if tenantID == "" {
		return nil
	}
	err := os.Remove(filepath.Join(g.dir, tenantID+".png"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (g *FileGenerator) menuURL(slug string) string {
	return g.baseURL + "/" + slug
}
