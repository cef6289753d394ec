package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Requirement represents a user's intent to install a package.
// This is the input representation before installation (e.g., from envboot.yaml
// or the built-in install set).
type Requirement struct {
	// Name is the package name as requested (e.g., "numpy", "python-docx").
	Name InternedString

	// Version is the requested version pin, empty when the latest release
	// should be installed.
	Version InternedString
}

// ParseRequirement parses a requirement string in "name" or "name==version" form.
func ParseRequirement(s string) (Requirement, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", s)
	}

	name, version, pinned := strings.Cut(spec, "==")
	name = strings.TrimSpace(name)
	version = strings.TrimSpace(version)

	if name == "" || strings.ContainsAny(name, " \t") {
		return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", s)
	}
	if pinned && version == "" {
		return Requirement{}, zerr.With(ErrInvalidRequirement, "requirement", s)
	}

	return Requirement{
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}, nil
}

// Spec renders the requirement in the form pip expects on its command line.
func (r Requirement) Spec() string {
	if r.Version.String() == "" {
		return r.Name.String()
	}
	return r.Name.String() + "==" + r.Version.String()
}
