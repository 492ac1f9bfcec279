package cmd

import (
	"fmt"

	"camprobe/internal/camera"
	"camprobe/internal/config"
	"camprobe/internal/ping"
	"camprobe/internal/server"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		host        string
		port        int
		camerasFile string
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP API サーバーを起動する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
			}

			// コマンドラインオプションで設定を上書き
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("cameras") {
				cfg.Cameras.File = camerasFile
			}
			if flags.Changed("watch") {
				cfg.Cameras.Watch = watch
			}
			if level, _ := flags.GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("設定の検証に失敗しました: %w", err)
			}

			logger := newLogger(cmd, cfg.Log.Level)

			store := camera.NewStore(cfg.Cameras.File, logger.WithPrefix("store"))
			prober := ping.NewProber(ping.WithLogger(logger.WithPrefix("ping")))
			manager := camera.NewDefaultCameraManager(store, prober, logger.WithPrefix("camera"))
			manager.SetWatch(cfg.Cameras.Watch)

			srv := server.New(cfg, manager, logger.WithPrefix("server"))

			logger.Info("camprobe サーバーを起動します", "addr", cfg.ServerAddress(), "cameras", cfg.Cameras.File)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "サーバーのポート (デフォルト: 8080)")
	cmd.Flags().StringVar(&camerasFile, "cameras", "", "カメラ設定ファイル (デフォルト: cameras.yaml)")
	cmd.Flags().BoolVar(&watch, "watch", true, "カメラ設定ファイルの変更を監視する")

	return cmd
}
