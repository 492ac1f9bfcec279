package camera

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"camprobe/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// storeFile は設定ファイルの形式
type storeFile struct {
	Cameras []Camera `yaml:"cameras"`
}

// Store は YAML ファイルに保存されるカメラ一覧
// path が空の場合はメモリ上のみで管理する
type Store struct {
	path    string
	logger  *log.Logger
	mu      sync.RWMutex
	cameras []Camera
}

// NewStore は新しい Store を作成する
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	if path != "" {
		path = filepath.Clean(path)
	}
	return &Store{path: path, logger: logger}
}

// Path は設定ファイルのパスを返す
func (s *Store) Path() string {
	return s.path
}

// Load は設定ファイルを読み込む。ファイルが存在しない場合は空の一覧になる
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.mu.Lock()
		s.cameras = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("カメラ設定の読み込みに失敗: %w", err)
	}

	var f storeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("カメラ設定の解析に失敗: %w", err)
	}

	cameras := make([]Camera, 0, len(f.Cameras))
	seen := make(map[string]bool, len(f.Cameras))
	for _, cam := range f.Cameras {
		cam, err := normalize(cam)
		if err != nil {
			s.logger.Warn("無効なカメラ設定をスキップしました", "camera", cam.Name, "err", err)
			continue
		}
		if seen[cam.Name] {
			s.logger.Warn("重複したカメラ名をスキップしました", "camera", cam.Name)
			continue
		}
		seen[cam.Name] = true
		cameras = append(cameras, cam)
	}

	s.mu.Lock()
	s.cameras = cameras
	s.mu.Unlock()

	s.logger.Debug("カメラ設定を読み込みました", "path", s.path, "cameras", len(cameras))
	return nil
}

// Save は現在のカメラ一覧を設定ファイルに書き込む
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

// saveLocked はロック取得済みの状態で書き込む
func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(storeFile{Cameras: s.cameras})
	if err != nil {
		return fmt.Errorf("カメラ設定の変換に失敗: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("設定ディレクトリの作成に失敗: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("カメラ設定の書き込みに失敗: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("カメラ設定の置き換えに失敗: %w", err)
	}

	return nil
}

// List はカメラ一覧のコピーを返す
func (s *Store) List() []Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cameras := make([]Camera, len(s.cameras))
	copy(cameras, s.cameras)
	return cameras
}

// Get は名前でカメラを取得する
func (s *Store) Get(name string) (Camera, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cam := range s.cameras {
		if cam.Name == name {
			return cam, true
		}
	}
	return Camera{}, false
}

// Add はカメラを追加して保存する
func (s *Store) Add(cam Camera) (Camera, error) {
	cam, err := normalize(cam)
	if err != nil {
		return Camera{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.cameras {
		if existing.Name == cam.Name {
			return Camera{}, fmt.Errorf("%w: %s", ErrCameraExists, cam.Name)
		}
	}

	s.cameras = append(s.cameras, cam)
	if err := s.saveLocked(); err != nil {
		s.cameras = s.cameras[:len(s.cameras)-1]
		return Camera{}, err
	}

	return cam, nil
}

// Remove は名前でカメラを削除して保存する
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cam := range s.cameras {
		if cam.Name != name {
			continue
		}

		previous := s.cameras
		s.cameras = append(append([]Camera{}, s.cameras[:i]...), s.cameras[i+1:]...)
		if err := s.saveLocked(); err != nil {
			s.cameras = previous
			return err
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrCameraNotFound, name)
}

// Update は名前で指定したカメラを更新して保存する
// 名前の変更先が既に存在する場合は ErrCameraExists を返す
func (s *Store) Update(name string, update CameraUpdate) (Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, cam := range s.cameras {
		if cam.Name == name {
			index = i
			break
		}
	}
	if index < 0 {
		return Camera{}, fmt.Errorf("%w: %s", ErrCameraNotFound, name)
	}

	cam := s.cameras[index]
	if update.Name != nil {
		cam.Name = *update.Name
	}
	if update.VideoConfig != nil {
		cam.VideoConfig = *update.VideoConfig
	}

	cam, err := normalize(cam)
	if err != nil {
		return Camera{}, err
	}
	if cam.Name != name {
		for _, existing := range s.cameras {
			if existing.Name == cam.Name {
				return Camera{}, fmt.Errorf("%w: %s", ErrCameraExists, cam.Name)
			}
		}
	}

	previous := s.cameras[index]
	s.cameras[index] = cam
	if err := s.saveLocked(); err != nil {
		s.cameras[index] = previous
		return Camera{}, err
	}

	return cam, nil
}

// RemoveAll は全てのカメラを削除して保存する
func (s *Store) RemoveAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.cameras
	s.cameras = nil
	if err := s.saveLocked(); err != nil {
		s.cameras = previous
		return err
	}
	return nil
}

// Watch は設定ファイルの変更を監視し、変更があれば再読み込みする
// ctx がキャンセルされるまでブロックする
func (s *Store) Watch(ctx context.Context, onReload func()) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ファイル監視の開始に失敗: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// エディタの置き換え保存に対応するため、ディレクトリを監視する
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("ディレクトリの監視に失敗: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				s.logger.Warn("カメラ設定の再読み込みに失敗しました", "err", err)
				continue
			}
			s.logger.Info("カメラ設定を再読み込みしました", "path", s.path)
			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("ファイル監視でエラーが発生しました", "err", err)
		}
	}
}

// normalize はカメラ設定を検証し、ID と静止画ソースを補完する
func normalize(cam Camera) (Camera, error) {
	cam.Name = strings.TrimSpace(cam.Name)
	if cam.Name == "" {
		return cam, fmt.Errorf("%w: 名前が空です", ErrInvalidCamera)
	}
	if cam.ID == "" {
		cam.ID = uuid.New().String()
	}
	cam.URL = ""
	cam.VideoConfig = cam.VideoConfig.Prepared()
	return cam, nil
}
