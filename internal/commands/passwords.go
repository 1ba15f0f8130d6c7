package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegeneratePasswordsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-passwords",
		Short: "Set the default credential on employees that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := env.services(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := services.Employee.RegeneratePasswords(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "passwords regenerated for %d employee(s)\n", updated)
			return nil
		},
	}
}
