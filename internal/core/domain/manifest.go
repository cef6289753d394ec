package domain

import (
	"sort"
	"strings"
)

// PinnedPackage is a single installed package at an exact version, as reported
// by the installer's freeze operation.
type PinnedPackage struct {
	Name    InternedString
	Version InternedString
}

// Manifest represents the complete state of installed packages at the moment
// of export. It is the in-memory form of the flat "name==version" file.
type Manifest struct {
	Packages []PinnedPackage
}

// ParseManifest parses freeze output into a Manifest.
// Blank lines and comment lines are skipped. Lines without an exact pin
// (editable installs, direct URLs) are carried through with an empty version
// so the rendered manifest still reflects the installer's state verbatim.
func ParseManifest(out string) Manifest {
	var m Manifest
	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, version, ok := strings.Cut(line, "==")
		if !ok {
			m.Packages = append(m.Packages, PinnedPackage{
				Name: NewInternedString(line),
			})
			continue
		}
		m.Packages = append(m.Packages, PinnedPackage{
			Name:    NewInternedString(strings.TrimSpace(name)),
			Version: NewInternedString(strings.TrimSpace(version)),
		})
	}
	return m
}

// Render produces the manifest file content, one package per line in
// "name==version" form, terminated by a newline when non-empty.
func (m Manifest) Render() string {
	if len(m.Packages) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range m.Packages {
		b.WriteString(p.Name.String())
		if v := p.Version.String(); v != "" {
			b.WriteString("==")
			b.WriteString(v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Lookup returns the pinned version for a package name, using pip's
// case-insensitive name matching. The second return reports presence.
func (m Manifest) Lookup(name string) (string, bool) {
	for _, p := range m.Packages {
		if strings.EqualFold(normalizeName(p.Name.String()), normalizeName(name)) {
			return p.Version.String(), true
		}
	}
	return "", false
}

// Sorted returns a copy of the manifest with packages ordered by name.
// Freeze output is already sorted by pip, but config-driven sets are not.
func (m Manifest) Sorted() Manifest {
	pkgs := make([]PinnedPackage, len(m.Packages))
	copy(pkgs, m.Packages)
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].Name.String() < pkgs[j].Name.String()
	})
	return Manifest{Packages: pkgs}
}

// normalizeName applies PEP 503 name normalization: runs of "-", "_" and "."
// compare equal, case-insensitively.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	return name
}
