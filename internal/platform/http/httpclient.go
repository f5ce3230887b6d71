package http

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"resty.dev/v3"
)

const (
	defaultRetryCount       = 3
	defaultRetryWaitTime    = 1 * time.Second
	defaultRetryMaxWaitTime = 10 * time.Second
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns: 最大アイドル接続数（高負荷時の枯渇防止のため100）
//   - IdleConnTimeout: アイドル接続の維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - Google APIクライアントはこのクライアントをoauth2のベーストランスポートとして使用します
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// RestyOptions はREST APIクライアントの設定です。ゼロ値の項目はデフォルト値になります。
type RestyOptions struct {
	BaseURL      string
	Timeout      time.Duration
	RetryCount   int // 負の値でリトライ無効
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// NewRestyClient はNewHTTPClientのトランスポート上にリトライ付きのRESTクライアントを作成します。
// ネットワークエラー、408、429、5xxのみ指数バックオフでリトライします。
func NewRestyClient(opts RestyOptions) *resty.Client {
	retries := opts.RetryCount
	switch {
	case retries == 0:
		retries = defaultRetryCount
	case retries < 0:
		retries = 0
	}
	wait := opts.RetryWait
	if wait <= 0 {
		wait = defaultRetryWaitTime
	}
	maxWait := opts.RetryMaxWait
	if maxWait <= 0 {
		maxWait = defaultRetryMaxWaitTime
	}

	return resty.NewWithClient(NewHTTPClient(opts.Timeout)).
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(maxWait).
		AddRetryConditions(retryCondition).
		AddRetryHooks(retryHook)
}

// retryCondition はレスポンスとエラーからリトライすべきかを判定します。
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	switch code := r.StatusCode(); {
	case code >= 500:
		return true
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}

// retryHook はリトライの発生をログに記録します。
func retryHook(r *resty.Response, err error) {
	if err != nil {
		slog.Debug("retrying request due to error",
			"url", r.Request.URL,
			"attempt", r.Request.Attempt,
			"error", err.Error())
		return
	}

	slog.Debug("retrying request due to status code",
		"url", r.Request.URL,
		"attempt", r.Request.Attempt,
		"status_code", r.StatusCode())
}
