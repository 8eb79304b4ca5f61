package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/export"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

func newNewCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Criar e salvar uma simulação",
		Long: `Cria uma simulação a partir dos valores padrão da configuração,
sobrepostos pelo arquivo --input e pelas flags de cada campo.`,
		Example: `  ifplan new --name "Sítio Boa Vista" --area 30 --numero-de-piquetes 20
  ifplan new --name "Cenário seco" --input cenario.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := applyInputFlags(cmd.Flags(), a.cfg.Defaults)
			if err != nil {
				return err
			}

			sim, err := a.svc.Create(cmd.Context(), simulations.CreateInput{
				Name:        name,
				Description: description,
				Input:       in,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Simulação criada: %s\n\n", sim.ID)
			writeSimulation(out, a.fmt, sim)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "nome da simulação (obrigatório)")
	cmd.Flags().StringVar(&description, "description", "", "descrição")
	_ = cmd.MarkFlagRequired("name")
	addInputFlags(cmd.Flags())

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Listar simulações salvas, mais recentes primeiro",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.svc.List(cmd.Context(), models.Pagination{Page: page, PageSize: pageSize})
			if err != nil {
				return err
			}
			writeList(cmd.OutOrStdout(), a.fmt, list)
			return nil
		},
	}

	def := models.DefaultPagination()
	cmd.Flags().IntVar(&page, "page", def.Page, "página")
	cmd.Flags().IntVar(&pageSize, "page-size", def.PageSize, "simulações por página (0 = todas)")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var (
		formatName string
		verify     bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Mostrar uma simulação",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			switch formatName {
			case "text", "":
				writeSimulation(out, a.fmt, sim)
			case "json":
				if err := export.WriteJSON(out, []*models.Simulation{sim}); err != nil {
					return err
				}
			case "yaml", "yml":
				if err := export.WriteYAML(out, []*models.Simulation{sim}); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", formatName)
			}

			if !verify {
				return nil
			}

			report, err := a.svc.Verify(ctx, sim.ID)
			if err != nil {
				return err
			}
			if report.OK() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Resultados conferem com o cálculo atual.")
				return nil
			}
			return fmt.Errorf("stored results differ from a fresh calculation: %s (run 'ifplan edit %s' to recalculate)",
				strings.Join(report.Mismatched, ", "), sim.ID)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "text", "formato de saída: text, json ou yaml")
	cmd.Flags().BoolVar(&verify, "verify", false, "recalcular e conferir os resultados salvos")

	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Alterar dados de entrada e recalcular",
		Long: `Aplica o arquivo --input e as flags de campo sobre os dados salvos
e recalcula todos os indicadores. Sem alterações, apenas recalcula.`,
		Example: `  ifplan edit 0190f5d4-... --producao-de-leite 20 --var-preco 1.1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			in, err := applyInputFlags(cmd.Flags(), sim.Inputs)
			if err != nil {
				return err
			}

			updated, err := a.svc.UpdateInputs(ctx, sim.ID, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if inputFlagsChanged(cmd.Flags()) {
				fmt.Fprintln(out, "Simulação atualizada.")
			} else {
				fmt.Fprintln(out, "Simulação recalculada.")
			}
			fmt.Fprintln(out)
			writeSimulation(out, a.fmt, updated)
			return nil
		},
	}

	addInputFlags(cmd.Flags())
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Alterar nome e descrição",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("description") {
				return errors.New("nothing to change: pass --name and/or --description")
			}

			ctx := cmd.Context()
			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			details := simulations.UpdateDetailsInput{Name: sim.Name, Description: sim.Description}
			if flags.Changed("name") {
				details.Name = name
			}
			if flags.Changed("description") {
				details.Description = description
			}

			updated, err := a.svc.UpdateDetails(ctx, sim.ID, details)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Simulação %s renomeada para %q.\n", updated.ID, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "novo nome")
	cmd.Flags().StringVar(&description, "description", "", "nova descrição")

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Excluir uma simulação",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sim, err := a.svc.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("Excluir %q?", sim.Name)) {
				return errCanceled
			}

			if err := a.svc.Delete(ctx, sim.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Simulação %q excluída.\n", sim.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Excluir todas as simulações",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !yes && !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "Excluir todas as simulações?") {
				return errCanceled
			}

			n, err := a.svc.Clear(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d simulações excluídas.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}
