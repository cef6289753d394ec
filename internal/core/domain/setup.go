package domain

import "time"

// Setup is the resolved plan for one bootstrap run: which interpreter to use,
// where the virtual environment lives, what to install, and where the freeze
// manifest is written. It is produced by the config loader; absence of a
// config file yields the built-in defaults.
type Setup struct {
	// Python is the interpreter used to create the venv and drive pip
	// (e.g., "python3").
	Python InternedString

	// VenvDir is the virtual environment directory, relative to the
	// working directory unless absolute.
	VenvDir InternedString

	// Packages is the ordered install set, fixed at authoring time unless
	// overridden by configuration.
	Packages []Requirement

	// ManifestPath is the freeze manifest file, overwritten on each export.
	ManifestPath InternedString
}

// ExportInfo records the outcome of a manifest export. It is persisted in a
// small state file next to the manifest so re-runs can report whether the
// dependency set actually changed.
type ExportInfo struct {
	ManifestPath string    `json:"manifest_path,omitzero"`
	ContentHash  string    `json:"content_hash,omitzero"`
	PackageCount int       `json:"package_count,omitzero"`
	Timestamp    time.Time `json:"timestamp,omitzero"`
}
