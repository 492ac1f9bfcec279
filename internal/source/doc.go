// Package source はカメラのソース設定文字列を解析し、正規化された記述子に変換する
//
// # 責務
// - ffmpeg 形式のコマンドライン文字列から `-i <target>` を抽出する
// - 抽出したターゲットをネットワーク/ローカルファイル/不明に分類する
// - 一覧表示用の URL（認証情報・クエリを含まない）を生成する
// - 静止画キャプチャ用のソース文字列を導出する
//
// # 仕様
// - 分類は順序付きの判定テーブルで行い、最初に一致した規則を採用する
// - 解析に失敗してもエラーは返さず、KindUnknown として扱う
// - I/O は一切行わない
package source
