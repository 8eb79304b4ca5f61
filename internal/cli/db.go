package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/database"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manutenção do banco de dados",
	}

	cmd.AddCommand(
		newDBStatusCmd(a),
		newDBBackupCmd(a),
		newDBCheckCmd(a),
		newDBBackupsCmd(a),
	)
	return cmd
}

func newDBStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Mostrar caminho, tamanho, versão do esquema e número de simulações",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			stats, err := a.db.GetStats(ctx)
			if err != nil {
				return err
			}

			migrator, err := database.NewMigrator(a.db)
			if err != nil {
				return err
			}
			version, err := migrator.CurrentVersion(ctx)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Arquivo", stats.Path},
				{"Tamanho", humanBytes(stats.SizeBytes)},
				{"WAL", humanBytes(stats.WALSizeBytes)},
				{"Páginas", fmt.Sprintf("%d (%d livres, %d bytes cada)", stats.PageCount, stats.FreePageCount, stats.PageSize)},
				{"Journal", stats.JournalMode},
				{"Esquema", fmt.Sprintf("versão %d de %d", version, migrator.LatestVersion())},
				{"Simulações", strconv.FormatInt(stats.Simulations, 10)},
			}
			if dir := a.db.BackupDir(); dir != "" {
				rows = append(rows, []string{"Backups", dir})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Item", "Valor"}, rows))
			return nil
		},
	}
}

func newDBBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Gravar uma cópia consistente do banco no diretório de backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.db.Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup gravado em %s\n", path)
			return nil
		},
	}
}

func newDBCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verificar a integridade do banco",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if r := a.recovery; r != nil && len(r.Steps) > 0 {
				rows := make([][]string, 0, len(r.Steps))
				for _, step := range r.Steps {
					status := "ok"
					if !step.Succeeded {
						status = "falhou"
					}
					rows = append(rows, []string{step.Name, status, step.Message})
				}
				fmt.Fprintf(out, "Verificação na abertura: %s\n", r.Result)
				fmt.Fprintln(out, renderTable([]string{"Etapa", "Status", "Mensagem"}, rows))
			}

			if err := a.db.HealthCheck(ctx); err != nil {
				return err
			}
			if err := a.db.CheckIntegrity(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Integridade: ok")
			return nil
		},
	}
}

func newDBBackupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backups",
		Short: "Listar backups, mais recentes primeiro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			dir := a.db.BackupDir()
			if dir == "" {
				fmt.Fprintln(out, "Banco em memória: sem backups.")
				return nil
			}

			backups, err := database.ListBackups(dir)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintf(out, "Nenhum backup em %s\n", dir)
				return nil
			}

			rows := make([][]string, 0, len(backups))
			for _, b := range backups {
				rows = append(rows, []string{filepath.Base(b)})
			}
			fmt.Fprintln(out, renderTable([]string{"Backup"}, rows))
			fmt.Fprintf(out, "Diretório: %s\n", dir)
			return nil
		},
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
