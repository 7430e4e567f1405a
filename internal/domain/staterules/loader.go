package staterules

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
)

// Loader supplies the state rules for a scan. Implementations may read
// from file, database, or a remote config service.
type Loader interface {
	Load() (Rules, error)
}

// FileLoader reads state rules from a JSON file. An empty path falls
// back to the built-in defaults.
type FileLoader struct {
	Path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

func (l *FileLoader) Load() (Rules, error) {
	if l.Path == "" {
		slog.Info("No state rules file configured, using built-in defaults")
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read state rules file: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse state rules file: %w", err)
	}
	if rules.PTSlabs == nil {
		rules.PTSlabs = map[string][]PTSlab{}
	}
	if rules.MinWages == nil {
		rules.MinWages = map[string]decimal.Decimal{}
	}
	return rules, nil
}

// DefaultRules returns a conservative built-in rule set: a generic PT
// slab table and a single minimum-wage floor. Deployments are expected
// to override it with a real per-state file.
func DefaultRules() Rules {
	d := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	return Rules{
		PTSlabs: map[string][]PTSlab{
			DefaultKey: {
				{Min: d(0), Max: d(14999), Amount: d(0)},
				{Min: d(15000), Max: d(19999), Amount: d(150)},
				{Min: d(20000), Max: d(99999999), Amount: d(200)},
			},
		},
		MinWages: map[string]decimal.Decimal{
			DefaultKey: d(10000),
		},
	}
}
