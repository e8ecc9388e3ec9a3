package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"fred_dashboard/internal/feature/indicators/chart"
	"fred_dashboard/internal/feature/indicators/domain"
	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
	"fred_dashboard/internal/platform/metrics"
)

// 画面の描画結果
const (
	outcomeRendered     = "rendered"
	outcomeNoData       = "no_data"
	outcomeConfigError  = "config_error"
	outcomeInvalidInput = "invalid_input"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type statsView struct {
	Latest       string
	LatestPeriod string
	Change       string
	ChangeUp     bool
	Min          string
	MinPeriod    string
	Max          string
	MaxPeriod    string
	Mean         string
}

type rowView struct {
	Date   string
	Period string
	Value  string
}

// dashboardView はdashboard.htmlに渡すビューモデルです。
type dashboardView struct {
	Indicators  []option
	ChartTypes  []option
	Quarters    int
	MinQuarters int
	MaxQuarters int
	Start       string
	End         string
	Raw         bool

	Banner  string // 設定エラー
	Message string // 入力エラー・データなし

	Indicator *entity.Indicator
	Chart     *chart.Config
	Stats     *statsView
	Rows      []rowView
}

// Dashboard はダッシュボード画面を描画します。
// 設定エラーはバナー、データ取得失敗はチャートの代わりのメッセージとして表示し、
// 入力エラーのみ400を返します。
//
// エンドポイント例:
// GET /?indicator=unemployment&chart=bar&quarters=12&raw=1
func (h *IndicatorHandler) Dashboard(c *gin.Context) {
	f := parseForm(c, c.DefaultQuery("indicator", entity.DefaultIndicatorKey))
	view := h.newView(f)

	if err := h.uc.ConfigError(); err != nil {
		view.Banner = bannerText(err)
		h.render(c, http.StatusOK, outcomeConfigError, view)
		return
	}

	res, err := h.uc.GetSeries(c.Request.Context(), f.query())
	switch {
	case err == nil:
		view.fill(res, f.Chart)
		h.render(c, http.StatusOK, outcomeRendered, view)
	case errors.Is(err, domain.ErrConfiguration):
		view.Banner = bannerText(err)
		h.render(c, http.StatusOK, outcomeConfigError, view)
	case isInvalidInput(err):
		view.Message = err.Error()
		h.render(c, http.StatusBadRequest, outcomeInvalidInput, view)
	default:
		view.Message = fmt.Sprintf("No data available for %s. Please try another indicator.", displayName(f.Indicator))
		h.render(c, http.StatusOK, outcomeNoData, view)
	}
}

func (h *IndicatorHandler) render(c *gin.Context, status int, outcome string, view *dashboardView) {
	metrics.RecordRender(outcome)
	c.Header("Cache-Control", "no-store")
	c.Render(status, render.HTML{Template: h.tmpl, Name: "dashboard.html", Data: view})
	if len(c.Errors) > 0 {
		slog.Error("render dashboard", "error", c.Errors.String())
	}
}

func (h *IndicatorHandler) newView(f form) *dashboardView {
	selected := f.Indicator
	if ind, err := entity.LookupIndicator(selected); err == nil {
		selected = ind.Key
	}

	view := &dashboardView{
		Quarters:    f.Quarters,
		MinQuarters: usecase.MinQuarters,
		MaxQuarters: usecase.MaxQuarters,
		Start:       f.Start,
		End:         f.End,
		Raw:         f.Raw,
	}
	for _, ind := range h.uc.ListIndicators() {
		view.Indicators = append(view.Indicators, option{Value: ind.Key, Label: ind.Name, Selected: ind.Key == selected})
	}
	for _, t := range chart.Types {
		view.ChartTypes = append(view.ChartTypes, option{Value: string(t), Label: t.Label(), Selected: t == f.Chart})
	}
	return view
}

// fill populates the chart, statistics and raw rows from one result.
// Chart and table are built from the same observations.
func (v *dashboardView) fill(res *usecase.Result, t chart.Type) {
	s := res.Series
	ind := s.Indicator
	v.Indicator = &ind
	v.Chart = chart.Build(s, t)

	sum := res.Summary
	stats := &statsView{
		Latest:       formatNumber(sum.Latest) + " " + ind.Units,
		LatestPeriod: entity.Observation{Date: sum.LatestDate}.Period(),
		Min:          formatNumber(sum.Min),
		MinPeriod:    entity.Observation{Date: sum.MinDate}.Period(),
		Max:          formatNumber(sum.Max),
		MaxPeriod:    entity.Observation{Date: sum.MaxDate}.Period(),
		Mean:         formatNumber(sum.Mean),
	}
	if sum.Change != nil {
		stats.Change = fmt.Sprintf("%+.2f%%", *sum.Change)
		stats.ChangeUp = *sum.Change >= 0
	}
	v.Stats = stats

	// 新しい順
	for _, o := range s.Newest() {
		v.Rows = append(v.Rows, rowView{
			Date:   o.Date.Format(entity.DateLayout),
			Period: o.Period(),
			Value:  formatNumber(o.Value),
		})
	}
}

func bannerText(err error) string {
	return "FRED API is not available: " + err.Error()
}

func displayName(key string) string {
	if ind, err := entity.LookupIndicator(key); err == nil {
		return ind.Name
	}
	return key
}

// formatNumber formats v with two decimals and thousands separators (e.g., 27,956.00).
func formatNumber(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 && s != "0.00" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
