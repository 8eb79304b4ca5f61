package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/export"
	"github.com/ifplan/ifplan/internal/models"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		all        bool
		formatName string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Exportar simulações em CSV, JSON, YAML ou relatório HTML",
		Long: `Exporta uma simulação, ou todas com --all. A saída vai para o
terminal, a menos que --out indique um arquivo. Com --out e um diretório
existente, o nome do arquivo é sugerido a partir do nome da simulação.`,
		Example: `  ifplan export 0190f5d4-... --format html --out relatorio.html
  ifplan export --all --format csv --out .`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return errors.New("pass either an id or --all, not both")
			}
			if !all && len(args) != 1 {
				return errors.New("pass a simulation id or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var (
				sims     []*models.Simulation
				filename string
			)
			if all {
				list, err := a.svc.List(ctx, models.All())
				if err != nil {
					return err
				}
				sims = list.Simulations
				filename = export.AllFilename(f)
			} else {
				sim, err := a.svc.Get(ctx, args[0])
				if err != nil {
					return err
				}
				sims = []*models.Simulation{sim}
				filename = export.Filename(sim, f)
			}

			if len(sims) == 0 {
				return export.ErrNothingToExport
			}

			exp := export.New(a.fmt)
			if outPath == "" || outPath == "-" {
				return exp.Write(cmd.OutOrStdout(), f, sims)
			}

			path := outPath
			if info, err := os.Stat(outPath); err == nil && info.IsDir() {
				path = outPath + string(os.PathSeparator) + filename
			}

			if err := writeFile(path, func(w io.Writer) error { return exp.Write(w, f, sims) }); err != nil {
				return err
			}

			log.Info().Str("path", path).Str("format", string(f)).Int("simulations", len(sims)).Msg("export written")
			fmt.Fprintf(cmd.OutOrStdout(), "%d simulações exportadas para %s\n", len(sims), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "exportar todas as simulações")
	cmd.Flags().StringVarP(&formatName, "format", "f", string(export.FormatCSV), "formato: csv, json, yaml ou html")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "arquivo ou diretório de saída (padrão: terminal)")

	return cmd
}

// writeFile creates path and removes it again if fn fails.
func writeFile(path string, fn func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := fn(file); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
