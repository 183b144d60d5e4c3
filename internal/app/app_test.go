package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
)

func TestNew_FileSource(t *testing.T) {
	dir := t.TempDir()
	data := "型号,Speed\nA,10\nB,20\n"
	if err := os.WriteFile(filepath.Join(dir, "data.csv"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Source: config.SourceConfig{DataDir: dir, File: "data.csv"},
		Export: config.ExportConfig{PDFEnabled: false, MaxConcurrentRenders: 1},
	}
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.Builder.CanRender() {
		t.Error("pdf export should be disabled")
	}
	table, err := a.Service.Table(context.Background())
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if got := table.Identifiers(); len(got) != 2 || got[0] != "A" {
		t.Errorf("Identifiers() = %v", got)
	}
}

func TestNew_MissingSource(t *testing.T) {
	cfg := &config.Config{Source: config.SourceConfig{DataDir: t.TempDir(), File: "data.csv"}}

	_, err := New(context.Background(), cfg)
	if !errors.Is(err, core.ErrSourceNotFound) {
		t.Errorf("New() error = %v, want ErrSourceNotFound", err)
	}
}

func TestNewBuilder_PDFEnabled(t *testing.T) {
	b := NewBuilder(config.ExportConfig{PDFEnabled: true, FontPaths: []string{"/nonexistent.ttf"}})
	if !b.CanRender() {
		t.Error("pdf export should be enabled")
	}
	if b.Limiter() == nil {
		t.Error("limiter should be set")
	}
}
