package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[package]\nname = \"demo\"\n")

	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("find: %v, %v", path, err)
	}
	if path != want {
		t.Fatalf("found %q, want %q", path, want)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty tree")
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[fmt]\nwidth = 80\nuse-cache = true\n")

	m, ok, err := LoadManifest(root)
	if err != nil || !ok {
		t.Fatalf("load: %v, %v", m, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name %q", m.Config.Package.Name)
	}
	if m.Config.Fmt.Width != 80 || !m.Config.Fmt.UseCache {
		t.Fatalf("fmt config %+v", m.Config.Fmt)
	}
	if m.Root != root {
		t.Fatalf("root %q, want %q", m.Root, root)
	}
}

func TestLoadManifestMissingIsNotAnError(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected absence, got %+v", m)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package]\nname = \"bare\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fmt.Width != 0 || cfg.Fmt.UseCache {
		t.Fatalf("missing [fmt] must keep zero values, got %+v", cfg.Fmt)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package\nname =")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestLoadConfigIgnoresUnknownSections(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package]\nname = \"x\"\n\n[future-section]\nkey = 1\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unknown sections must be ignored: %v", err)
	}
	if cfg.Package.Name != "x" {
		t.Fatalf("config %+v", cfg)
	}
}
