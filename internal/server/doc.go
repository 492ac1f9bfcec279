// Package server は、カメラソースの到達性確認 API を提供するHTTPサーバーです。
//
// ルーティングは internal/generated の ServerInterface に従い、
// CamprobeHandler がカメラマネージャーへの委譲を担当します。
//
// 責務:
//   - HTTPサーバーの起動とグレースフルシャットダウン
//   - カメラ一覧・設定の参照と追加・削除
//   - 到達性確認の受け付けと流量制限
//   - エラーレスポンスの統一
//
// 仕様:
//   - ginを使用
//   - パラメータの解析エラーは 400、未登録のカメラは 404
//   - 到達性確認はトークンバケットで制限し、超過時は 429
package server
