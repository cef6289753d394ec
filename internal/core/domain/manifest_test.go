package domain_test

import (
	"testing"

	"go.sortd.dev/envboot/internal/core/domain"
)

const freezeOutput = `# generated by pip freeze
numpy==2.1.0

Pillow==11.0.0
transformers==4.46.1
-e git+https://example.com/tool.git#egg=tool
`

func TestParseManifest(t *testing.T) {
	m := domain.ParseManifest(freezeOutput)

	if len(m.Packages) != 4 {
		t.Fatalf("expected 4 packages, got %d", len(m.Packages))
	}
	if m.Packages[0].Name.String() != "numpy" || m.Packages[0].Version.String() != "2.1.0" {
		t.Errorf("unexpected first package %q==%q", m.Packages[0].Name, m.Packages[0].Version)
	}

	// Editable installs keep their line but carry no pin.
	last := m.Packages[3]
	if last.Version.String() != "" {
		t.Errorf("expected unpinned editable line, got version %q", last.Version)
	}
}

func TestParseManifest_Empty(t *testing.T) {
	m := domain.ParseManifest("\n# nothing here\n\n")
	if len(m.Packages) != 0 {
		t.Errorf("expected empty manifest, got %d packages", len(m.Packages))
	}
	if m.Render() != "" {
		t.Errorf("expected empty render, got %q", m.Render())
	}
}

func TestManifest_Render(t *testing.T) {
	m := domain.Manifest{Packages: []domain.PinnedPackage{
		{Name: domain.NewInternedString("numpy"), Version: domain.NewInternedString("2.1.0")},
		{Name: domain.NewInternedString("easyocr")},
	}}

	want := "numpy==2.1.0\neasyocr\n"
	if got := m.Render(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestManifest_Lookup(t *testing.T) {
	m := domain.ParseManifest("Pillow==11.0.0\npython_docx==1.1.2\n")

	version, ok := m.Lookup("pillow")
	if !ok || version != "11.0.0" {
		t.Errorf("expected pillow 11.0.0, got %q (found=%v)", version, ok)
	}

	// PEP 503: underscores, dots, and dashes compare equal.
	version, ok = m.Lookup("Python.Docx")
	if !ok || version != "1.1.2" {
		t.Errorf("expected python_docx 1.1.2, got %q (found=%v)", version, ok)
	}

	if _, ok := m.Lookup("torch"); ok {
		t.Error("expected miss for torch")
	}
}

func TestManifest_Sorted(t *testing.T) {
	m := domain.ParseManifest("pymupdf==1.24.0\neasyocr==1.7.2\nnumpy==2.1.0\n")
	sorted := m.Sorted()

	if sorted.Packages[0].Name.String() != "easyocr" {
		t.Errorf("expected easyocr first, got %q", sorted.Packages[0].Name)
	}

	// Original order is untouched.
	if m.Packages[0].Name.String() != "pymupdf" {
		t.Errorf("expected original order preserved, got %q first", m.Packages[0].Name)
	}
}
