package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and puzzle storage",
		Long:  "Create the configuration directory with a default config.yaml, then create the data directory and its JSONL files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dataDir, err := a.dataDir()
			if err != nil {
				return sysError(fmt.Errorf("resolve data dir: %w", err))
			}
			written, err := writeConfigIfMissing(a.configDir, dataDir)
			if err != nil {
				return sysError(err)
			}

			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer detach(store, &err)

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"config_dir":     a.configDir,
					"data_dir":       dataDir,
					"config_written": written,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "nine initialized successfully")
			fmt.Fprintln(out, "  config:", a.configDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
