package cmd

import (
	"errors"
	"fmt"

	"camprobe/internal/ping"
	"camprobe/internal/source"

	"github.com/spf13/cobra"
)

// ErrUnreachable は probe で到達できなかったことを表す
var ErrUnreachable = errors.New("unreachable")

func newProbeCommand() *cobra.Command {
	var (
		line    string
		timeout int
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "ソース設定の到達性を1回確認する",
		Long: `probe は --source に与えた ffmpeg 形式の設定文字列から入力先を取り出し、
到達可能なら終了コード 0、そうでなければ 1 で終了します。`,
		Example: `  camprobe probe --source "-rtsp_transport tcp -i rtsp://192.168.1.10:554/stream1"
  camprobe probe --source "-re -i ./samples/demo.mp4" --timeout 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, "warn")
			prober := ping.NewProber(ping.WithLogger(logger))

			d := source.Extract(line)
			ok := prober.Status(cmd.Context(), line, ping.ClampTimeout(timeout))

			result := "unreachable"
			if ok {
				result = "reachable"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", result, d.Kind, d.String())

			if !ok {
				return ErrUnreachable
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&line, "source", "", "ffmpeg 形式のソース設定文字列")
	cmd.Flags().IntVar(&timeout, "timeout", 1, "1回あたりのタイムアウト秒数（1未満は1）")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}
