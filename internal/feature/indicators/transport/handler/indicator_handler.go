// Package handler はindicatorsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fred_dashboard/internal/feature/indicators/chart"
	"fred_dashboard/internal/feature/indicators/domain"
	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndicatorUsecase は指標データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IndicatorUsecase interface {
	ListIndicators() []entity.Indicator
	ConfigError() error
	GetSeries(ctx context.Context, q usecase.Query) (*usecase.Result, error)
}

// IndicatorHandler はダッシュボード画面とJSON APIのHTTPリクエストを処理します。
type IndicatorHandler struct {
	uc   IndicatorUsecase
	tmpl *template.Template
}

// NewIndicatorHandler は埋め込みテンプレートを読み込み、IndicatorHandlerを生成します。
func NewIndicatorHandler(uc IndicatorUsecase) (*IndicatorHandler, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &IndicatorHandler{uc: uc, tmpl: tmpl}, nil
}

// form は画面・APIで共通のクエリパラメータです。
type form struct {
	Indicator string
	Chart     chart.Type
	Quarters  int
	Start     string
	End       string
	Raw       bool
}

// parseForm reads the query string. Unparseable quarters fall back to the default.
func parseForm(c *gin.Context, indicator string) form {
	quarters, _ := strconv.Atoi(c.Query("quarters"))
	return form{
		Indicator: strings.TrimSpace(indicator),
		Chart:     chart.ParseType(c.Query("chart")),
		Quarters:  usecase.NormalizeQuarters(quarters),
		Start:     strings.TrimSpace(c.Query("start")),
		End:       strings.TrimSpace(c.Query("end")),
		Raw:       isTruthy(c.Query("raw")),
	}
}

func (f form) query() usecase.Query {
	return usecase.Query{
		IndicatorKey: f.Indicator,
		Quarters:     f.Quarters,
		Start:        f.Start,
		End:          f.End,
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// isInvalidInput reports errors caused by the request itself.
func isInvalidInput(err error) bool {
	return errors.Is(err, domain.ErrUnknownIndicator) || errors.Is(err, domain.ErrInvalidRange)
}

// apiStatus maps a usecase error to an HTTP status for the JSON API.
func apiStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnknownIndicator):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
