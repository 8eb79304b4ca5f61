package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ifplan/ifplan/internal/models"
)

// bom makes spreadsheet programs read the file as UTF-8.
const bom = "\uFEFF"

// CSVHeader returns the column labels: identity columns, then every input,
// then every indicator. Labels carry the unit in parentheses when there is one.
func CSVHeader() []string {
	header := []string{"ID", "Nome", "Descrição", "Data"}
	for _, f := range models.InputFields {
		header = append(header, label(f.Label, f.Unit))
	}
	for _, f := range models.OutputFields {
		header = append(header, label(f.Label, f.Unit))
	}
	return header
}

// CSVRecord returns one row for sim, aligned with CSVHeader. Numbers use a
// dot decimal separator and full precision; non-finite values are empty.
func CSVRecord(sim *models.Simulation) []string {
	rec := make([]string, 0, 4+len(models.InputFields)+len(models.OutputFields))
	rec = append(rec, sim.ID, sim.Name, sim.Description, sim.Date.UTC().Format(time.RFC3339))
	for _, f := range models.InputFields {
		rec = append(rec, csvNumber(f.Value(sim.Inputs)))
	}
	for _, f := range models.OutputFields {
		rec = append(rec, csvNumber(f.Value(sim.Results)))
	}
	return rec
}

// WriteCSV writes a BOM, the header and one CRLF-terminated row per
// simulation.
func WriteCSV(w io.Writer, sims []*models.Simulation) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(CSVHeader()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, sim := range sims {
		if err := cw.Write(CSVRecord(sim)); err != nil {
			return fmt.Errorf("writing csv row %s: %w", sim.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func csvNumber(v float64) string {
	if !models.IsFinite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func label(name, unit string) string {
	if unit == "" {
		return name
	}
	return name + " (" + unit + ")"
}
