package source

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// inputPattern は ffmpeg の入力指定 `-i <target>` に一致する
	inputPattern = regexp.MustCompile(`(?:^|\s)-i\s+(\S+)`)

	// drivePattern は Windows の絶対パス（例: C:\ や D:/）に一致する
	drivePattern = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// Classifier はターゲット文字列を記述子に変換する判定規則
type Classifier struct {
	Name     string
	Classify func(target string) (Descriptor, bool)
}

// Classifiers は判定規則の一覧。先頭から評価し、最初に一致したものを採用する
var Classifiers = []Classifier{
	{Name: "url", Classify: classifyNetwork},
	{Name: "unix_path", Classify: classifyUnixPath},
	{Name: "windows_path", Classify: classifyWindowsPath},
	{Name: "relative_path", Classify: classifyRelativePath},
}

// NormalizeSpaces はノーブレークスペースを通常のスペースに置き換える
func NormalizeSpaces(line string) string {
	return strings.ReplaceAll(line, "\u00a0", " ")
}

// Target はソース設定文字列から `-i` の引数を取り出す。見つからなければ空文字を返す
func Target(line string) string {
	matches := inputPattern.FindStringSubmatch(NormalizeSpaces(line))
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// Extract はソース設定文字列を解析して記述子を返す
func Extract(line string) Descriptor {
	target := Target(line)
	if target == "" {
		return Descriptor{Kind: KindUnknown}
	}
	return Classify(target)
}

// Classify はターゲット文字列を判定規則に従って分類する
func Classify(target string) Descriptor {
	target = strings.TrimSpace(NormalizeSpaces(target))
	if target == "" {
		return Descriptor{Kind: KindUnknown}
	}

	for _, c := range Classifiers {
		if d, ok := c.Classify(target); ok {
			return d
		}
	}

	return Descriptor{Kind: KindUnknown, Raw: target}
}

// FormatDisplayURL は一覧表示用の URL を返す。ソースが無い場合は空文字
func FormatDisplayURL(line string) string {
	return Extract(line).String()
}

// classifyNetwork はスキームとホストを持つ絶対 URL を判定する
func classifyNetwork(target string) (Descriptor, bool) {
	u, ok := parseURL(target)
	if !ok {
		return Descriptor{}, false
	}

	d := Descriptor{
		Kind:   KindNetwork,
		Raw:    target,
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Path:   u.Path,
	}
	if p := u.Port(); p != "" {
		port, ok := parsePort(p)
		if !ok {
			return Descriptor{}, false
		}
		d.Port = port
	}

	return d, true
}

// parseURL は URL として解析できたかを値で返す
// 1文字のスキームはドライブレターとみなして除外する
func parseURL(target string) (*url.URL, bool) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, false
	}
	if len(u.Scheme) < 2 || u.Hostname() == "" {
		return nil, false
	}
	return u, true
}

// parsePort はポート番号文字列を検証して数値に変換する
func parsePort(s string) (int, bool) {
	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

func classifyUnixPath(target string) (Descriptor, bool) {
	if !strings.HasPrefix(target, "/") {
		return Descriptor{}, false
	}
	return localDescriptor(target), true
}

func classifyWindowsPath(target string) (Descriptor, bool) {
	if !drivePattern.MatchString(target) {
		return Descriptor{}, false
	}
	return localDescriptor(target), true
}

func classifyRelativePath(target string) (Descriptor, bool) {
	if !strings.HasPrefix(target, "./") && !strings.HasPrefix(target, "../") {
		return Descriptor{}, false
	}
	return localDescriptor(target), true
}

// localDescriptor はローカルファイルの記述子を作る（バックスラッシュはスラッシュに変換）
func localDescriptor(target string) Descriptor {
	return Descriptor{
		Kind:           KindLocal,
		Raw:            target,
		NormalizedPath: strings.ReplaceAll(target, `\`, "/"),
	}
}
