package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidfetch/internal/ytdlp"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a video through the daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := ctx.apiClient()

			fmt.Fprintln(out, "Submitting download...")
			resp, err := client.Download(cmd.Context(), args[0], quality)
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"Job", resp.DownloadID},
					{"File", resp.FileName},
					{"Size", resp.FileSize},
					{"Path", resp.FilePath},
				},
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "best",
		fmt.Sprintf("Target quality (%s)", strings.Join(ytdlp.Qualities(), ", ")))
	return cmd
}
