package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPrintCmd(opts *cliOptions) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Run the load cascade once and print the resolved document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.content.Load(cmd.Context())
			if err != nil {
				return err
			}
			for _, attempt := range result.Attempts {
				if attempt.Error != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", attempt.Tier, attempt.Error)
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", result.Source)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result.Document)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print JSON on one line")
	return cmd
}
