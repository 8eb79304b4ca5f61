package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ifplan/ifplan/internal/models"
)

// calculation is what calc prints in data formats.
type calculation struct {
	Inputs  models.Input  `json:"inputs" yaml:"inputs"`
	Results models.Output `json:"results" yaml:"results"`
}

func newCalcCmd(a *app) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calcular indicadores sem salvar",
		Long: `Calcula os indicadores para os valores padrão da configuração,
sobrepostos pelo arquivo --input e pelas flags de cada campo. Nada é gravado.`,
		Example: `  ifplan calc --producao-de-leite 18 --temperatura-maxima 34
  ifplan calc --input cenario.toml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := applyInputFlags(cmd.Flags(), a.cfg.Defaults)
			if err != nil {
				return err
			}

			out, err := a.svc.Preview(in)
			if err != nil {
				return err
			}

			return writeCalculation(cmd.OutOrStdout(), a, formatName, calculation{Inputs: in, Results: out})
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "formato de saída: text, json ou yaml")
	addInputFlags(cmd.Flags())

	return noStore(cmd)
}

func writeCalculation(w io.Writer, a *app, formatName string, c calculation) error {
	switch formatName {
	case "text", "":
		writeOutput(w, a.fmt, c.Results)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", formatName)
	}
}
