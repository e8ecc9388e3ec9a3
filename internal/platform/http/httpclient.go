package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API（FRED）呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConnsPerHost: 接続先はFREDのみのためホスト単位で上限を設定
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること
//   - クエリ文字列にはapi_keyが含まれるため、ログにはパスのみを出力する
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &loggingTransport{next: t}}
}

// loggingTransport は外部API呼び出しの結果と所要時間をDEBUGレベルで記録します。
type loggingTransport struct {
	next http.RoundTripper
}

func (lt *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := lt.next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		slog.DebugContext(req.Context(), "upstream request failed",
			"method", req.Method, "host", req.URL.Host, "path", req.URL.Path,
			"duration", elapsed, "error", err)
		return nil, err
	}
	slog.DebugContext(req.Context(), "upstream request",
		"method", req.Method, "host", req.URL.Host, "path", req.URL.Path,
		"status", res.StatusCode, "duration", elapsed)
	return res, nil
}
