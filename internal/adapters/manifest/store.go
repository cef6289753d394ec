// Package manifest implements the manifest store: the freeze manifest file
// plus a small JSON state file recording the last export.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.sortd.dev/envboot/internal/core/domain"
	"go.trai.ch/zerr"
)

// StateFilename is the sidecar written next to the manifest.
const StateFilename = ".envboot-state.json"

// Store implements ports.ManifestStore using flat files.
type Store struct {
	manifestPath string
	statePath    string

	mu    sync.RWMutex
	state domain.ExportInfo
}

// NewStore creates a Store for the manifest at the given path. Export state
// is kept in a sidecar file in the manifest's directory.
func NewStore(manifestPath string) (*Store, error) {
	manifestPath = filepath.Clean(manifestPath)
	s := &Store{
		manifestPath: manifestPath,
		statePath:    filepath.Join(filepath.Dir(manifestPath), StateFilename),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read export state")
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupted state file only costs the "unchanged" report.
		s.state = domain.ExportInfo{}
	}
	return nil
}

// Write overwrites the manifest file with the rendered manifest, fully
// replacing any previous content, and updates the export state.
func (s *Store) Write(m domain.Manifest) (domain.ExportInfo, bool, error) {
	content := m.Render()
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(content))

	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Manifest is a user-facing artifact, world-readable on purpose
	if err := os.WriteFile(s.manifestPath, []byte(content), 0o644); err != nil {
		writeErr := zerr.Wrap(err, "failed to write manifest")
		return domain.ExportInfo{}, false, zerr.With(writeErr, "path", s.manifestPath)
	}

	changed := hash != s.state.ContentHash
	s.state = domain.ExportInfo{
		ManifestPath: s.manifestPath,
		ContentHash:  hash,
		PackageCount: len(m.Packages),
		Timestamp:    time.Now().UTC(),
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return domain.ExportInfo{}, false, zerr.Wrap(err, "failed to marshal export state")
	}
	//nolint:gosec // State sidecar carries no secrets
	if err := os.WriteFile(s.statePath, data, 0o644); err != nil {
		return domain.ExportInfo{}, false, zerr.Wrap(err, "failed to write export state")
	}

	return s.state, changed, nil
}

// Read parses the manifest file as last written.
func (s *Store) Read() (domain.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Manifest{}, nil
		}
		return domain.Manifest{}, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", s.manifestPath)
	}
	return domain.ParseManifest(string(data)), nil
}
