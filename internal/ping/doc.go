// Package ping はカメラソースの到達可能性を判定する
//
// # 責務
// - ローカルファイル: カレントディレクトリ基準でファイルの存在を確認する
// - ネットワーク: TCP 接続を5回試行し、3回以上成功すれば到達可能とする
// - TCP で定足数に達しなければ ICMP エコーで再確認する
//
// # 仕様
// - 1回の Status 呼び出しは1回の時点計測であり、時間をおいた再試行は行わない
// - TCP 試行は並行に実行し、結果が確定した時点で残りを打ち切る
// - Status が戻る前に全ての試行が終了していることを保証する
// - 途中のエラーは全て false として扱い、呼び出し元には伝播しない
// - 呼び出し間で共有する可変状態は持たない
package ping
