package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMigrateCmd(env *Env) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations, including the catalog seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.DB == nil {
				return errNoDatabase
			}
			if err := env.DB.RunMigrations(env.Cfg.Database.MigrationsPath); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "migrations applied")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.DB == nil {
				return errNoDatabase
			}
			if err := env.DB.MigrateDown(env.Cfg.Database.MigrationsPath); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "last migration rolled back")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q: %v", args[0], err)
			}
			if env.DB == nil {
				return errNoDatabase
			}
			if err := env.DB.MigrateToVersion(env.Cfg.Database.MigrationsPath, uint(version)); err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "migrated to version %d\n", version)
			return nil
		},
	})

	return migrateCmd
}
