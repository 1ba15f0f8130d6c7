package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/hr-records-api/internal/bootstrap"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("database connection is not available")

// Env carries the state shared by the subcommands. Services may be set
// up front, in which case no configuration or database is loaded.
type Env struct {
	Log      zerolog.Logger
	Out      io.Writer
	Cfg      *config.Config
	DB       *database.DB
	Services *service.Services

	cleanup func()
}

// New builds the hrctl command tree
func New(env *Env) *cobra.Command {
	if env.Out == nil {
		env.Out = os.Stdout
	}

	rootCmd := &cobra.Command{
		Use:           "hrctl",
		Short:         "Administrative tasks for the HR records database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if env.Services != nil {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.New(&cfg.Database, env.Log)
			if err != nil {
				return err
			}

			env.Cfg = cfg
			env.DB = db
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			env.Close()
		},
	}

	rootCmd.AddCommand(newMigrateCmd(env))
	rootCmd.AddCommand(newImportCmd(env))
	rootCmd.AddCommand(newRegeneratePasswordsCmd(env))

	return rootCmd
}

// services returns the pre-wired services or builds them over the open database
func (e *Env) services(ctx context.Context) (*service.Services, error) {
	if e.Services != nil {
		return e.Services, nil
	}
	if e.DB == nil {
		return nil, errNoDatabase
	}

	deps, cleanup, err := bootstrap.Dependencies(ctx, e.Cfg, bootstrap.Options{}, e.Log)
	if err != nil {
		return nil, err
	}
	e.cleanup = cleanup
	e.Services = service.NewServices(repository.New(e.DB), deps, e.Cfg, e.Log)
	return e.Services, nil
}

// Close releases the database and any dependencies opened by the commands
func (e *Env) Close() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	if e.DB != nil {
		e.DB.Close()
		e.DB = nil
	}
}
