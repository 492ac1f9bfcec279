package ping

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"time"

	"camprobe/internal/logging"
	"camprobe/internal/source"

	"github.com/charmbracelet/log"
)

const (
	DefaultAttempts    = 5  // TCP 試行回数
	DefaultQuorum      = 3  // 到達可能と判定する成功数（5回中2回を超える）
	DefaultPort        = 80 // ポート未指定時の接続先
	DefaultICMPRetries = 2  // ICMP エコーの送信回数
	MinTimeoutSeconds  = 1
)

// Dialer は TCP 接続を確立する（net.Dialer が満たす）
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Pinger は ICMP エコーを送信し、応答があったかを返す
type Pinger interface {
	Ping(ctx context.Context, host string, timeout time.Duration, count int) (bool, error)
}

// StatFunc はファイルの存在確認に使う（os.Stat と同じシグネチャ）
type StatFunc func(name string) (os.FileInfo, error)

// Prober は到達可能性の判定を行う
// 呼び出しごとにソケットを確保・解放するため、複数ゴルーチンから同時に使用できる
type Prober struct {
	dialer      Dialer
	pinger      Pinger
	stat        StatFunc
	getwd       func() (string, error)
	logger      *log.Logger
	attempts    int
	quorum      int
	defaultPort int
	icmpRetries int
}

// Option は Prober の設定を変更する
type Option func(*Prober)

// WithDialer は TCP 接続に使う Dialer を設定する
func WithDialer(d Dialer) Option {
	return func(p *Prober) { p.dialer = d }
}

// WithPinger は ICMP プローブに使う Pinger を設定する
func WithPinger(pg Pinger) Option {
	return func(p *Prober) { p.pinger = pg }
}

// WithStat はファイル存在確認の関数を設定する
func WithStat(stat StatFunc) Option {
	return func(p *Prober) { p.stat = stat }
}

// WithWorkingDir は相対パス解決の基準ディレクトリを固定する
func WithWorkingDir(dir string) Option {
	return func(p *Prober) {
		p.getwd = func() (string, error) { return dir, nil }
	}
}

// WithLogger はロガーを設定する
func WithLogger(l *log.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// NewProber は新しい Prober を作成する
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		dialer:      &net.Dialer{},
		pinger:      NewICMPPinger(),
		stat:        os.Stat,
		getwd:       os.Getwd,
		logger:      logging.Discard(),
		attempts:    DefaultAttempts,
		quorum:      DefaultQuorum,
		defaultPort: DefaultPort,
		icmpRetries: DefaultICMPRetries,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Using は指定したロガーを使う Prober のコピーを返す
func (p *Prober) Using(l *log.Logger) *Prober {
	clone := *p
	clone.logger = l
	return &clone
}

// ClampTimeout はタイムアウト秒数を1以上に丸める
func ClampTimeout(seconds int) int {
	if seconds < MinTimeoutSeconds {
		return MinTimeoutSeconds
	}
	return seconds
}

// Status はソース設定文字列を解析し、到達可能かを返す
func (p *Prober) Status(ctx context.Context, rawSource string, timeoutSeconds int) bool {
	d := source.Extract(rawSource)
	if d.IsEmpty() {
		p.logger.Warn("カメラソースにpingできません。ソースが見つかりません", "source", rawSource)
		return false
	}
	return p.StatusOf(ctx, d, timeoutSeconds)
}

// StatusOf は解析済みの記述子について到達可能かを返す
func (p *Prober) StatusOf(ctx context.Context, d source.Descriptor, timeoutSeconds int) bool {
	if d.IsEmpty() {
		p.logger.Warn("カメラソースにpingできません。ソースが見つかりません")
		return false
	}

	timeout := time.Duration(ClampTimeout(timeoutSeconds)) * time.Second
	p.logger.Debug("pingリクエストを受信しました", "target", d.Raw, "timeout", timeout)

	switch d.Kind {
	case source.KindLocal:
		return p.localExists(d)
	case source.KindNetwork:
		return p.networkReachable(ctx, d, timeout)
	default:
		p.logger.Warn("無効なソース形式です", "target", d.Raw)
		return false
	}
}

// localExists はカレントディレクトリ基準でファイルが存在するかを確認する
func (p *Prober) localExists(d source.Descriptor) bool {
	path := filepath.FromSlash(d.NormalizedPath)
	if !filepath.IsAbs(path) {
		wd, err := p.getwd()
		if err != nil {
			p.logger.Debug("カレントディレクトリの取得に失敗しました", "err", err)
			return false
		}
		path = filepath.Join(wd, path)
	}

	if _, err := p.stat(path); err != nil {
		p.logger.Debug("ローカルファイルの確認", "path", path, "exists", false, "err", err)
		return false
	}

	p.logger.Debug("ローカルファイルの確認", "path", path, "exists", true)
	return true
}

// networkReachable は TCP 定足数判定と ICMP フォールバックを行う
func (p *Prober) networkReachable(ctx context.Context, d source.Descriptor, timeout time.Duration) bool {
	addr := d.Address(p.defaultPort)
	p.logger.Debug("pingを実行します", "address", addr)

	available := p.tcpQuorum(ctx, addr, timeout)

	if !available && p.pinger != nil {
		ok, err := p.pinger.Ping(ctx, d.Host, timeout, p.icmpRetries)
		if err != nil {
			p.logger.Debug("ICMPプローブに失敗しました", "host", d.Host, "err", err)
		}
		available = ok && err == nil
	}

	result := "failed"
	if available {
		result = "successful"
	}
	p.logger.Debug("pingが完了しました", "address", addr, "result", result)

	return available
}
