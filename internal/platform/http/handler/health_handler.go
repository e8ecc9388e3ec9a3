// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import "github.com/gin-gonic/gin"

// HealthStatus はヘルスチェックで報告するプロセスの状態です。
type HealthStatus struct {
	FredConfigured bool   // FRED APIキーが設定済みか
	Cache          string // "redis" または "memory"
}

// healthResponse は /healthz のレスポンスです。
type healthResponse struct {
	Status         string `json:"status"`
	FredConfigured bool   `json:"fred_configured"`
	Cache          string `json:"cache"`
}

// NewHealth は /healthz エンドポイントのハンドラーを返します。
// APIキー未設定でもプロセスは稼働しているため、ステータスは常に200で "degraded" を返します。
func NewHealth(st HealthStatus) gin.HandlerFunc {
	body := healthResponse{Status: "ok", FredConfigured: st.FredConfigured, Cache: st.Cache}
	if !st.FredConfigured {
		body.Status = "degraded"
	}

	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
		switch c.Request.Method {
		case "HEAD":
			c.Status(200)
		case "OPTIONS":
			c.Status(204)
		default:
			c.JSON(200, body)
		}
	}
}
