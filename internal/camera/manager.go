package camera

import (
	"context"
	"fmt"
	"sync"

	"camprobe/internal/logging"
	"camprobe/internal/ping"
	"camprobe/internal/source"

	"github.com/charmbracelet/log"
)

var _ Manager = (*DefaultCameraManager)(nil)

// DefaultCameraManager はCamera Managerのデフォルト実装
type DefaultCameraManager struct {
	store  *Store
	prober *ping.Prober
	logger *log.Logger

	// 制御用
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// 設定ファイルの監視
	watch bool
}

// NewDefaultCameraManager は新しいDefaultCameraManagerを作成する
func NewDefaultCameraManager(store *Store, prober *ping.Prober, logger *log.Logger) *DefaultCameraManager {
	if logger == nil {
		logger = logging.Discard()
	}
	if prober == nil {
		prober = ping.NewProber()
	}
	return &DefaultCameraManager{
		store:  store,
		prober: prober,
		logger: logger,
	}
}

// SetWatch は設定ファイル監視の有効/無効を設定する
func (m *DefaultCameraManager) SetWatch(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watch = enabled
}

// Start はカメラ設定を読み込み、必要であれば監視を開始する
func (m *DefaultCameraManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Load(); err != nil {
		return fmt.Errorf("カメラ設定の初期読み込みに失敗: %w", err)
	}
	m.logger.Info("カメラ設定を読み込みました", "cameras", len(m.store.List()))

	if m.watch && m.cancel == nil {
		watchCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			if err := m.store.Watch(watchCtx, nil); err != nil {
				m.logger.Warn("カメラ設定の監視を終了しました", "err", err)
			}
		}()
	}

	return nil
}

// Stop は監視を停止する
func (m *DefaultCameraManager) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.wg.Wait()

	return nil
}

// GetCameras は表示用 URL を付与したカメラ一覧を返す
func (m *DefaultCameraManager) GetCameras() []Camera {
	cameras := m.store.List()
	for i := range cameras {
		cameras[i] = withURL(cameras[i])
	}
	return cameras
}

// GetCamera は指定された名前のカメラを取得する
func (m *DefaultCameraManager) GetCamera(name string) (*Camera, bool) {
	cam, found := m.store.Get(name)
	if !found {
		return nil, false
	}

	result := withURL(cam)
	return &result, true
}

// GetSettings は指定された名前のカメラ設定を取得する
func (m *DefaultCameraManager) GetSettings(name string) (*Settings, bool) {
	cam, found := m.store.Get(name)
	if !found {
		return nil, false
	}

	return &Settings{
		Name:        cam.Name,
		VideoConfig: cam.VideoConfig,
		URL:         source.FormatDisplayURL(cam.VideoConfig.Source),
	}, true
}

// AddCamera はカメラを追加する
func (m *DefaultCameraManager) AddCamera(_ context.Context, cam Camera) (*Camera, error) {
	added, err := m.store.Add(cam)
	if err != nil {
		return nil, err
	}

	if d := source.Extract(added.VideoConfig.Source); d.IsEmpty() {
		logging.ForCamera(m.logger, added.Name).Warn("ソースに -i が含まれていません", "source", added.VideoConfig.Source)
	}

	result := withURL(added)
	return &result, nil
}

// UpdateCamera はカメラを部分更新する
func (m *DefaultCameraManager) UpdateCamera(_ context.Context, name string, update CameraUpdate) (*Camera, error) {
	updated, err := m.store.Update(name, update)
	if err != nil {
		return nil, err
	}

	if updated.Name != name {
		m.logger.Info("カメラ名を変更しました", "from", name, "to", updated.Name)
	}

	result := withURL(updated)
	return &result, nil
}

// RemoveCamera はカメラを削除する
func (m *DefaultCameraManager) RemoveCamera(_ context.Context, name string) error {
	return m.store.Remove(name)
}

// RemoveAllCameras は全てのカメラを削除する
func (m *DefaultCameraManager) RemoveAllCameras(_ context.Context) error {
	return m.store.RemoveAll()
}

// PingCamera はカメラのソースが到達可能かを確認する
// カメラが存在しない場合のみエラーを返す
func (m *DefaultCameraManager) PingCamera(ctx context.Context, name string, timeoutSeconds int) (bool, error) {
	cam, found := m.store.Get(name)
	if !found {
		return false, fmt.Errorf("%w: %s", ErrCameraNotFound, name)
	}

	prober := m.prober.Using(logging.ForCamera(m.logger, cam.Name))
	return prober.Status(ctx, cam.VideoConfig.Source, ping.ClampTimeout(timeoutSeconds)), nil
}

// withURL は表示用 URL を設定したコピーを返す
func withURL(cam Camera) Camera {
	cam.URL = source.FormatDisplayURL(cam.VideoConfig.Source)
	return cam
}
