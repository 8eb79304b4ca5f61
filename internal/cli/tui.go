package cli

import (
	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Abrir a interface de terminal",
		Long: `Abre a interface interativa: lista de simulações, resultados por
seção, painel de sensibilidade com recálculo imediato, renomear e excluir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tui.Version = a.version
			return tui.Run(cmd.Context(), a.svc, a.cfg, a.fmt)
		},
	}
}
