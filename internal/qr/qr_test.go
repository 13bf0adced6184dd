package qr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateWritesPNGAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	g := NewFileGenerator("https://menuqr.app/", dir)

	url, err := g.Generate(context.Background(), "tenant-1", "corner-cafe")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "/uploads/qr-codes/tenant-1.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tenant-1.png"))
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if len(data) == 0 || string(data[1:4]) != "PNG" {
		t.Fatal("expected a PNG file on disk")
	}
}

func TestGenerateRequiresInputs(t *testing.T) {
	g := NewFileGenerator("https://menuqr.app", t.TempDir())
	if _, err := g.Generate(context.Background(), "", "corner-cafe"); err == nil {
		t.Fatal("expected error for missing tenant id")
	}
	if _, err := g.Generate(context.Background(), "tenant-1", ""); err == nil {
		t.Fatal("expected error for missing slug")
	}
}

func TestGenerateHonorsCancelledContext(t *testing.T) {
	g := NewFileGenerator("https://menuqr.app", t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx, "tenant-1", "corner-cafe"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestDataURL(t *testing.T) {
	g := NewFileGenerator("https://menuqr.app", t.TempDir())
	url, err := g.DataURL(context.Background(), "corner-cafe")
	if err != nil {
		t.Fatalf("data url: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix in %q", url[:30])
	}
}

func TestRemoveToleratesMissingFile(t *testing.T) {
	g := NewFileGenerator("https://menuqr.app", t.TempDir())
	if err := g.Remove("never-generated"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := g.Remove(""); err != nil {
		t.Fatalf("remove empty: %v", err)
	}
}
