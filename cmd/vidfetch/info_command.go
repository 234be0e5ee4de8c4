package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "Fetch video metadata without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			client := ctx.apiClient()

			info, err := client.VideoInfo(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("video info: %w", err)
			}

			fmt.Fprintf(out, "Title:    %s\n", info.Title)
			fmt.Fprintf(out, "Uploader: %s\n", info.Uploader)
			fmt.Fprintf(out, "Duration: %s\n", formatDuration(info.Duration))
			if info.UploadDate != "" {
				fmt.Fprintf(out, "Uploaded: %s\n", info.UploadDate)
			}
			if len(info.Formats) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(info.Formats))
			for _, f := range info.Formats {
				fps := ""
				if f.FPS > 0 {
					fps = strconv.FormatFloat(f.FPS, 'f', -1, 64)
				}
				rows = append(rows, []string{f.FormatID, f.Ext, f.Resolution, fps, f.VideoCodec, f.AudioCodec})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"Format", "Ext", "Resolution", "FPS", "Video", "Audio"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "unknown"
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
