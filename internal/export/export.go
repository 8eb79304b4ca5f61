// Package export writes simulations as CSV, JSON, YAML or an HTML technical
// report.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
)

// Format selects an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// ErrNothingToExport is returned when no simulations are given.
var ErrNothingToExport = errors.New("nothing to export")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatYAML, FormatHTML}
}

// ParseFormat accepts a format name, case-insensitively. "yml" is an alias.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, json, yaml or html)", s)
	}
}

// Extension is the file extension, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// Exporter renders simulations. Only the HTML report depends on the
// formatter; data formats are locale-independent.
type Exporter struct {
	fmt *format.Formatter
}

// New returns an exporter. A nil formatter uses the pt-BR default.
func New(f *format.Formatter) *Exporter {
	if f == nil {
		f = format.Default()
	}
	return &Exporter{fmt: f}
}

// Write encodes sims to w in the given format.
func (e *Exporter) Write(w io.Writer, f Format, sims []*models.Simulation) error {
	if len(sims) == 0 {
		return ErrNothingToExport
	}

	switch f {
	case FormatCSV:
		return WriteCSV(w, sims)
	case FormatJSON:
		return WriteJSON(w, sims)
	case FormatYAML:
		return WriteYAML(w, sims)
	case FormatHTML:
		return e.WriteHTML(w, sims)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes one simulation as an object, several as an array.
// Non-finite indicators are encoded as the strings "NaN", "+Inf", "-Inf".
func WriteJSON(w io.Writer, sims []*models.Simulation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	var v any = sims
	if len(sims) == 1 {
		v = sims[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteYAML writes one simulation as a mapping, several as a sequence.
func WriteYAML(w io.Writer, sims []*models.Simulation) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	var v any = sims
	if len(sims) == 1 {
		v = sims[0]
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Filename suggests a file name for exporting sim: "simulacao-<slug>.<ext>".
// Accents are folded so the name stays portable.
func Filename(sim *models.Simulation, f Format) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(sim.Name),
	)
	if err != nil {
		folded = strings.ToLower(sim.Name)
	}

	slug := strings.Trim(slugInvalid.ReplaceAllString(folded, "-"), "-")
	if slug == "" {
		slug = sim.ID
	}
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	return "simulacao-" + slug + f.Extension()
}

// AllFilename names a multi-simulation export.
func AllFilename(f Format) string {
	return "simulacoes" + f.Extension()
}
