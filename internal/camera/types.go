package camera

import (
	"context"
	"errors"

	"camprobe/internal/source"
)

var (
	ErrCameraNotFound = errors.New("カメラが見つかりません")
	ErrCameraExists   = errors.New("カメラは既に存在します")
	ErrInvalidCamera  = errors.New("カメラ設定が無効です")
)

// VideoConfig はカメラの映像ソース設定（ffmpeg の引数形式）
type VideoConfig struct {
	Source           string `yaml:"source" json:"source"`                                         // 連続配信用のソース
	StillImageSource string `yaml:"stillImageSource,omitempty" json:"stillImageSource,omitempty"` // 静止画キャプチャ用のソース
	SubSource        string `yaml:"subSource,omitempty" json:"subSource,omitempty"`               // サブストリーム
}

// Prepared は静止画ソースを導出した設定を返す
func (v VideoConfig) Prepared() VideoConfig {
	v.StillImageSource = source.DeriveStillImageSource(v.Source, v.StillImageSource)
	return v
}

// Camera は設定ファイルで管理されるカメラの情報
type Camera struct {
	ID          string      `yaml:"id" json:"id"`                   // カメラの一意識別子
	Name        string      `yaml:"name" json:"name"`               // カメラ名（一意）
	VideoConfig VideoConfig `yaml:"videoConfig" json:"videoConfig"` // 映像ソース設定
	URL         string      `yaml:"-" json:"url,omitempty"`         // 表示用 URL（保存しない）
}

// CameraUpdate はカメラの部分更新。nil のフィールドは変更しない
type CameraUpdate struct {
	Name        *string
	VideoConfig *VideoConfig
}

// Settings はカメラ設定の表示用ビュー
type Settings struct {
	Name        string
	VideoConfig VideoConfig
	URL         string
}

// Manager はカメラの管理を担うインターフェース
type Manager interface {
	// Start はカメラマネージャーを開始する
	Start(ctx context.Context) error

	// Stop はカメラマネージャーを停止する
	Stop(ctx context.Context) error

	// GetCameras は現在管理されているカメラ一覧を取得する
	GetCameras() []Camera

	// GetCamera は指定された名前のカメラを取得する
	GetCamera(name string) (*Camera, bool)

	// GetSettings は指定された名前のカメラ設定を取得する
	GetSettings(name string) (*Settings, bool)

	// AddCamera はカメラを追加する
	AddCamera(ctx context.Context, cam Camera) (*Camera, error)

	// UpdateCamera はカメラを部分更新する
	UpdateCamera(ctx context.Context, name string, update CameraUpdate) (*Camera, error)

	// RemoveCamera はカメラを削除する
	RemoveCamera(ctx context.Context, name string) error

	// RemoveAllCameras は全てのカメラを削除する
	RemoveAllCameras(ctx context.Context) error

	// PingCamera はカメラのソースが到達可能かを確認する
	PingCamera(ctx context.Context, name string, timeoutSeconds int) (bool, error)
}
