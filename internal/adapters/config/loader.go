// Package config provides the configuration loader for envboot.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.sortd.dev/envboot/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the config file looked up in the working directory.
const DefaultFilename = "envboot.yaml"

// Built-in defaults reproducing the authored setup.
const (
	DefaultPython   = "python3"
	DefaultVenvDir  = ".venv"
	DefaultManifest = "requirements.txt"
)

// DefaultPackages is the fixed install set: the dependencies of the document
// sorter this tool bootstraps.
var DefaultPackages = []string{
	"numpy",
	"transformers",
	"pymupdf",
	"python-docx",
	"pillow",
	"easyocr",
}

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory. A missing
// file yields the built-in defaults.
func (l *FileConfigLoader) Load(cwd string) (*domain.Setup, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	// Joining an absolute path onto cwd would quietly turn it relative, and
	// a missing file is not an error, so the config would be ignored.
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(cwd, filename)
	}
	return Load(filename)
}

// Load reads a configuration file from the given path and returns the
// resolved setup plan.
func Load(path string) (*domain.Setup, error) {
	var file File
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	default:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	}

	python := file.Python
	if python == "" {
		python = DefaultPython
	}
	venv := file.Venv
	if venv == "" {
		venv = DefaultVenvDir
	}
	manifest := file.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	specs := file.Packages
	if len(specs) == 0 {
		specs = DefaultPackages
	}

	packages := make([]domain.Requirement, 0, len(specs))
	for _, spec := range specs {
		req, err := domain.ParseRequirement(spec)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		packages = append(packages, req)
	}

	return &domain.Setup{
		Python:       domain.NewInternedString(python),
		VenvDir:      domain.NewInternedString(venv),
		Packages:     packages,
		ManifestPath: domain.NewInternedString(manifest),
	}, nil
}
