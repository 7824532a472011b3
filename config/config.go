// Package config loads search tuning and driver settings from YAML,
// the way zurichess-derived tooling in this corpus configures itself.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corvidchess/corvid/search"
)

// File is the on-disk shape of a config file. ToOptions clamps the
// search fields into range via search.Options.Clamp (a zero MaxDepth,
// for example, becomes 1, not the default 64); TimePercent and
// TimeMinimumMillis are not read by ToOptions.
type File struct {
	LateMoveReduction uint8   `yaml:"late_move_reduction"`
	LateMoveLeeway    uint8   `yaml:"late_move_leeway"`
	NullMovePruning   *bool   `yaml:"null_move_pruning"`
	NullMoveReduction uint8   `yaml:"null_move_reduction"`
	MaxDepth          uint8   `yaml:"max_depth"`
	MaxNodes          uint32  `yaml:"max_nodes"`
	HashSizeMB        int     `yaml:"hash_size_mb"`
	TimePercent       float64 `yaml:"time_percent"`
	TimeMinimumMillis int     `yaml:"time_minimum_ms"`
}

// Default returns the file-level defaults mirroring search.DefaultOptions.
func Default() File {
	d := search.DefaultOptions()
	pruning := d.NullMovePruning
	return File{
		LateMoveReduction: d.LateMoveReduction,
		LateMoveLeeway:    d.LateMoveLeeway,
		NullMovePruning:   &pruning,
		NullMoveReduction: d.NullMoveReduction,
		MaxDepth:          d.MaxDepth,
		MaxNodes:          d.MaxNodes,
		HashSizeMB:        d.TranspositionBytes / (1 << 20),
		TimePercent:       0.05,
		TimeMinimumMillis: 50,
	}
}

// Load reads a YAML config file at path, falling back field-by-field
// to Default() for anything the file omits.
func Load(path string) (File, error) {
	f := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, err
	}
	return f, nil
}

// ToOptions converts the file's settings into a clamped search.Options.
func (f File) ToOptions() search.Options {
	o := search.Options{
		LateMoveReduction:  f.LateMoveReduction,
		LateMoveLeeway:     f.LateMoveLeeway,
		NullMovePruning:    f.NullMovePruning == nil || *f.NullMovePruning,
		NullMoveReduction:  f.NullMoveReduction,
		MaxDepth:           f.MaxDepth,
		MaxNodes:           f.MaxNodes,
		TranspositionBytes: f.HashSizeMB << 20,
	}
	return o.Clamp()
}
