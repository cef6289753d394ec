package config

// File represents the structure of the envboot.yaml configuration file.
// Every field is optional; omitted fields fall back to the built-in defaults,
// and a missing file reproduces the authored setup exactly.
type File struct {
	Version  string   `yaml:"version"`
	Python   string   `yaml:"python"`
	Venv     string   `yaml:"venv"`
	Manifest string   `yaml:"manifest"`
	Packages []string `yaml:"packages"`
}
