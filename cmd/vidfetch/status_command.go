package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidfetch/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon health and environment checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			health, err := ctx.apiClient().Health(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "Daemon:   unreachable (%v)\n", err)
			} else {
				fmt.Fprintf(out, "Daemon:   %s (%s)\n", health.Status, health.Message)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rows := make([][]string, 0, 4)
			for _, check := range preflight.Run(cfg) {
				state := "ok"
				if !check.Passed {
					state = "failed"
				}
				rows = append(rows, []string{check.Name, state, check.Detail})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable([]string{"Check", "State", "Detail"}, rows, nil))
			return nil
		},
	}
}
