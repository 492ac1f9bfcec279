package source

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Kind はソースの種別を表す
type Kind string

const (
	KindUnknown Kind = "unknown" // 分類できないソース
	KindLocal   Kind = "local"   // ローカルファイル
	KindNetwork Kind = "network" // ネットワークストリーム
)

// Descriptor は分類済みのソース記述子
type Descriptor struct {
	Kind Kind   // 種別
	Raw  string // 抽出されたターゲット（トリム済み）

	// ネットワークソース用
	Scheme string
	Host   string
	Port   int // 0 は未指定
	Path   string

	// ローカルソース用（スラッシュ区切り、ドライブレターは保持）
	NormalizedPath string
}

// IsEmpty はターゲットが見つからなかったかを返す
func (d Descriptor) IsEmpty() bool {
	return d.Raw == ""
}

// String は記述子の正規化表記（表示用 URL）を返す
func (d Descriptor) String() string {
	switch d.Kind {
	case KindNetwork:
		var b strings.Builder
		b.WriteString(d.Scheme)
		b.WriteString("://")
		b.WriteString(d.hostLiteral())
		if d.Port > 0 {
			b.WriteString(":")
			b.WriteString(strconv.Itoa(d.Port))
		}
		b.WriteString((&url.URL{Path: d.Path}).EscapedPath())
		return b.String()
	case KindLocal:
		if strings.HasPrefix(d.NormalizedPath, "/") {
			return "file://" + d.NormalizedPath
		}
		return "file:///" + d.NormalizedPath
	default:
		return d.Raw
	}
}

// Address はプローブ対象の host:port を返す。ポート未指定時は defaultPort を使う
func (d Descriptor) Address(defaultPort int) string {
	port := d.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}

// hostLiteral は IPv6 アドレスを角括弧で囲んだホスト表記を返す
func (d Descriptor) hostLiteral() string {
	if strings.Contains(d.Host, ":") {
		return "[" + d.Host + "]"
	}
	return d.Host
}
