package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

func newSensitivityCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:     "sensitivity <id>",
		Aliases: []string{"sens"},
		Short:   "Comparar indicadores com fatores de sensibilidade ajustados",
		Long: `Ajusta os multiplicadores de sensibilidade de uma simulação salva,
em percentual sobre o valor neutro (--preco 20 significa preço x1,20),
e compara os indicadores com os resultados salvos. Fatores não informados
mantêm o valor salvo. Com --save os novos multiplicadores são gravados.

Fatores: coe (custo operacional), dpl (produção de leite),
for (forragem), ms (matéria seca), preco (preço do leite).`,
		Example: `  ifplan sensitivity 0190f5d4-... --preco 20 --coe -10
  ifplan sensitivity 0190f5d4-... --dpl -15 --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			sens := models.Sensitivity{}
			for _, factor := range models.Factors() {
				name := string(factor)
				if !cmd.Flags().Changed(name) {
					continue
				}
				pct, _ := cmd.Flags().GetInt(name)
				if pct < simulations.MinPercent || pct > simulations.MaxPercent {
					return fmt.Errorf("--%s must be between %d and %d, got %d", name, simulations.MinPercent, simulations.MaxPercent, pct)
				}
				sens[factor] = models.PercentToSlider(pct)
			}

			cmp, err := a.svc.ApplySensitivity(ctx, sim.ID, sens)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeComparison(out, a.fmt, cmp)

			if !save {
				return nil
			}
			if _, err := a.svc.SaveSensitivity(ctx, sim.ID, sens); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nMultiplicadores salvos.")
			return nil
		},
	}

	for _, factor := range models.Factors() {
		cmd.Flags().Int(string(factor), 0, fmt.Sprintf("variação de %s em %% (-100 a 100)", factor.Label()))
	}
	cmd.Flags().BoolVar(&save, "save", false, "gravar os multiplicadores e resultados ajustados")

	return cmd
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		factorName string
		from, to   int
		step       int
		keys       []string
	)

	cmd := &cobra.Command{
		Use:   "sweep <id>",
		Short: "Variar um fator de sensibilidade em faixa e tabular indicadores",
		Long: `Recalcula a simulação para cada variação percentual de um fator,
de --from a --to em passos de --step. O multiplicador de cada ponto é
1 + variação/100, como no comando sensitivity: -100% corresponde ao
limite inferior do controle (x0,01). O multiplicador de cada ponto
substitui o multiplicador salvo do fator; os demais dados permanecem
como salvos. Nada é gravado.`,
		Example: `  ifplan sweep 0190f5d4-... --factor preco --from -30 --to 30 --step 10
  ifplan sweep 0190f5d4-... --factor dpl --keys ml,trci,lucratividade`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := models.ParseFactor(factorName)
			if err != nil {
				return err
			}

			for _, k := range keys {
				if _, ok := models.LookupOutputField(k); !ok {
					return fmt.Errorf("unknown indicator %q", k)
				}
			}

			percents, err := simulations.PercentRange(from, to, step)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			points, err := a.svc.Sweep(ctx, sim.Inputs, factor, percents)
			if err != nil {
				return err
			}

			writeSweep(cmd.OutOrStdout(), a.fmt, factor, points, keys)
			return nil
		},
	}

	factorNames := make([]string, 0, len(models.Factors()))
	for _, f := range models.Factors() {
		factorNames = append(factorNames, string(f))
	}

	cmd.Flags().StringVar(&factorName, "factor", string(models.FactorPreco), "fator: "+strings.Join(factorNames, ", "))
	cmd.Flags().IntVar(&from, "from", -50, "variação inicial em %")
	cmd.Flags().IntVar(&to, "to", 50, "variação final em %")
	cmd.Flags().IntVar(&step, "step", 10, "passo em pontos percentuais")
	cmd.Flags().StringSliceVar(&keys, "keys", []string{"ml", "trci", "producaoDiaria"}, "indicadores a tabular")

	return cmd
}
