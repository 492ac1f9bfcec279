package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"camprobe/internal/camera"
	"camprobe/internal/config"
	"camprobe/internal/generated"
	"camprobe/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config        *config.Config
	cameraManager camera.Manager
	logger        *log.Logger
	engine        *gin.Engine
	httpServer    *http.Server
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, manager camera.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	handler := NewHandler(cfg, manager, logger)
	generated.RegisterHandlersWithOptions(engine, handler, generated.GinServerOptions{
		ErrorHandler: handleParameterError,
	})
	engine.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "not_found", "指定されたパスは存在しません", nil)
	})

	return &Server{
		config:        cfg,
		cameraManager: manager,
		logger:        logger,
		engine:        engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Handler はルーティング済みの http.Handler を返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start はカメラマネージャーとサーバーを起動し、停止要求まで待つ
func (s *Server) Start(ctx context.Context) error {
	if err := s.cameraManager.Start(ctx); err != nil {
		return fmt.Errorf("カメラマネージャーの起動に失敗: %w", err)
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Info("HTTPサーバーを起動しています", "addr", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.Info("シグナルを受信しました", "signal", sig)
	case err := <-shutdownCh:
		_ = s.cameraManager.Stop(context.Background())
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}
	if err := s.cameraManager.Stop(ctx); err != nil {
		return fmt.Errorf("カメラマネージャーの停止に失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}

// requestLogger はリクエストごとにアクセスログを出力するミドルウェア
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
