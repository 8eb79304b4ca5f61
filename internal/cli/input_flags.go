package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/ifplan/ifplan/internal/models"
)

// addInputFlags registers one float flag per input field, named in
// kebab-case ("--temperatura-minima"), plus --input for a TOML file.
// Flags carry no default; only explicitly set flags are applied.
func addInputFlags(fs *pflag.FlagSet) {
	for _, f := range models.InputFields {
		usage := f.Label
		if f.Unit != "" {
			usage += " (" + f.Unit + ")"
		}
		fs.Float64(f.FlagName(), 0, usage)
	}
	fs.String("input", "", "TOML file with input values (snake_case keys)")
}

// applyInputFlags overlays the --input file and then every changed field
// flag on base.
func applyInputFlags(fs *pflag.FlagSet, base models.Input) (models.Input, error) {
	in := base

	if path, _ := fs.GetString("input"); path != "" {
		loaded, err := loadInputFile(path, in)
		if err != nil {
			return models.Input{}, err
		}
		in = loaded
	}

	for _, f := range models.InputFields {
		if !fs.Changed(f.FlagName()) {
			continue
		}
		v, err := fs.GetFloat64(f.FlagName())
		if err != nil {
			return models.Input{}, err
		}
		f.Set(&in, v)
	}
	return in, nil
}

// inputFlagsChanged reports whether any input flag or --input was given.
func inputFlagsChanged(fs *pflag.FlagSet) bool {
	if fs.Changed("input") {
		return true
	}
	for _, f := range models.InputFields {
		if fs.Changed(f.FlagName()) {
			return true
		}
	}
	return false
}

// loadInputFile decodes a TOML file on top of base. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadInputFile(path string, base models.Input) (models.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Input{}, fmt.Errorf("reading input file: %w", err)
	}

	in := base
	md, err := toml.Decode(string(data), &in)
	if err != nil {
		return models.Input{}, fmt.Errorf("parsing input file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return models.Input{}, fmt.Errorf("input file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return in, nil
}
