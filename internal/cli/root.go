// Package cli implements the ifplan command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ifplan/ifplan/internal/config"
	"github.com/ifplan/ifplan/internal/database"
	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/repository"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

// Commands annotated with annotationStore=storeNone never open the database;
// annotationConfig=configDefault skips reading the configuration file.
const (
	annotationStore  = "ifplan/store"
	storeNone        = "none"
	annotationConfig = "ifplan/config"
	configDefault    = "default"
)

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	version string

	cfg      *config.Config
	cfgPath  string
	fmt      *format.Formatter
	db       *database.DB
	svc      *simulations.Service
	recovery *database.RecoveryReport
}

// Run builds the root command, executes it with args and releases the
// database and log file whatever the outcome.
func Run(ctx context.Context, version string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{version: version}
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root Cobra command for the ifplan CLI.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&app{version: version})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ifplan",
		Short: "Planejamento de leite à pasto",
		Long: `IFPlan: indicadores produtivos, financeiros e ambientais para
produção de leite a pasto.`,
		Version:       a.version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	cmd.PersistentFlags().String("config", "", "path to configuration file")
	cmd.PersistentFlags().String("db", "", "path to the simulations database (overrides config)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newNewCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newRenameCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newCalcCmd(a),
		newSensitivityCmd(a),
		newSweepCmd(a),
		newExportCmd(a),
		newSeedCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
		newDBCmd(a),
		newVersionCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # Criar uma simulação com os valores padrão e alguns ajustes
  ifplan new --name "Sítio Boa Vista" --area 30 --producao-de-leite 16

  # Listar simulações salvas
  ifplan list

  # Ver uma simulação e conferir os resultados
  ifplan show 0190f5d4-... --verify

  # Sensibilidade: preço do leite +20%, COE -10%
  ifplan sensitivity 0190f5d4-... --preco 20 --coe -10

  # Exportar todas as simulações em CSV
  ifplan export --all --format csv --out simulacoes.csv

  # Abrir a interface de terminal
  ifplan tui`

// setup loads configuration, starts logging and, unless the command opts
// out, opens and migrates the database.
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	dbFlag, _ := cmd.Flags().GetString("db")
	debug, _ := cmd.Flags().GetBool("debug")

	var (
		cfg     *config.Config
		cfgPath string
		err     error
	)
	if cmd.Annotations[annotationConfig] == configDefault {
		cfg, cfgPath = config.Default(), config.ConfigPath(configPath)
	} else if cfg, cfgPath, err = config.Load(configPath, true); err != nil {
		return err
	}
	if dbFlag != "" {
		cfg.Database.Path = dbFlag
	}
	a.cfg, a.cfgPath = cfg, cfgPath

	if err := config.InitLogger(cfg.Logging, debug); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	f, err := format.New(cfg.Display.Locale, cfg.Display.DateFormat)
	if err != nil {
		return err
	}
	a.fmt = f

	if cmd.Annotations[annotationStore] == storeNone {
		// Calculations without persistence still go through the service.
		a.svc = simulations.NewService(repository.NewMemoryStore())
		return nil
	}

	return a.openStore(cmd.Context())
}

func (a *app) openStore(ctx context.Context) error {
	dbPath, err := config.EnsureDataDir(a.cfg)
	if err != nil {
		return err
	}

	var backupDir string
	if dbPath != database.MemoryPath {
		if backupDir, err = config.BackupDir(dbPath); err != nil {
			return err
		}
	}

	report, err := database.AttemptRecovery(ctx, dbPath, backupDir)
	a.recovery = report
	if err != nil {
		return fmt.Errorf("database %s is damaged and could not be recovered: %w", dbPath, err)
	}
	if report.Result == database.RecoveryFromBackup {
		log.Warn().Str("backup", report.BackupUsed).Msg("database restored from backup; recent changes may be lost")
	}

	db, err := database.Open(dbPath, a.cfg.Database, backupDir)
	if err != nil {
		return err
	}
	a.db = db

	if _, err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	a.svc = simulations.NewService(repository.NewSimulationRepository(db.DB))
	log.Debug().Str("path", dbPath).Str("config", a.cfgPath).Msg("store ready")
	return nil
}

func (a *app) close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
		a.db = nil
	}
	config.CloseLogFile()
	return err
}

// noStore marks cmd as not needing the database.
func noStore(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationStore] = storeNone
	return cmd
}

// errCanceled is returned when the user declines a confirmation.
var errCanceled = errors.New("operation canceled")
