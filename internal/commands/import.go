package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newImportCmd(env *Env) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import employees from an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to read the file flag: %v", err)
			}
			if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
				return fmt.Errorf("%s: only .xlsx files are supported", path)
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer file.Close()

			services, err := env.services(cmd.Context())
			if err != nil {
				return err
			}

			result := services.Import.ImportEmployees(cmd.Context(), file)

			encoder := json.NewEncoder(env.Out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return err
			}

			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}

	importCmd.Flags().StringP("file", "f", "", "path of the .xlsx workbook to import")
	importCmd.MarkFlagRequired("file")

	return importCmd
}
