package source

import (
	"regexp"
	"strings"
)

// realtimeFlagPatterns は連続配信専用のフラグ（リアルタイム再生・無限ループ）
var realtimeFlagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(^|\s)-re\s+`),
	regexp.MustCompile(`(^|\s)-stream_loop\s+-1\s+`),
}

// StripRealtimeFlags は `-re` と `-stream_loop -1` を取り除いてトリムする
// 連続した同一フラグも残らないよう、変化がなくなるまで繰り返す
func StripRealtimeFlags(line string) string {
	for {
		stripped := line
		for _, re := range realtimeFlagPatterns {
			stripped = re.ReplaceAllString(stripped, "$1")
		}
		if stripped == line {
			return strings.TrimSpace(stripped)
		}
		line = stripped
	}
}

// DeriveStillImageSource は静止画キャプチャ用のソース文字列を返す
//
// stillImageSource が指定されていればそれを、なければ source を元にする。
// スナップショット取得がリアルタイム再生や無限ループを引き継がないようにするため。
func DeriveStillImageSource(source, stillImageSource string) string {
	if still := StripRealtimeFlags(stillImageSource); still != "" {
		return still
	}
	return StripRealtimeFlags(source)
}
