// Package cmd はcamprobeのコマンドラインインターフェースを提供する
package cmd

import (
	"fmt"

	"camprobe/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewRootCommand はルートコマンドを作成する
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "camprobe",
		Short: "カメラソースの到達性確認ツール",
		Long: `camprobe は ffmpeg 形式のカメラソース設定から入力先を取り出し、
ローカルファイルの存在確認やネットワークカメラへの到達性確認を行います。

serve で HTTP API を起動し、probe と url で単発の確認ができます。`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "ログレベル (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newProbeCommand())
	rootCmd.AddCommand(newURLCommand())

	return rootCmd
}

// newLogger はフラグで指定されたレベルのロガーを作成する
// フラグが無ければ fallback を使う
func newLogger(cmd *cobra.Command, fallback string) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Output = cmd.ErrOrStderr()
	opts.Level = fallback
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		opts.Level = level
	}
	return logging.New(opts)
}
