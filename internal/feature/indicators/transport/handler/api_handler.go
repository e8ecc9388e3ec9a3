package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fred_dashboard/internal/feature/indicators/chart"
	"fred_dashboard/internal/feature/indicators/transport/http/dto"
)

// ListIndicators は選択可能な指標の一覧をJSONで返します。
//
// エンドポイント例:
// GET /api/indicators
func (h *IndicatorHandler) ListIndicators(c *gin.Context) {
	inds := h.uc.ListIndicators()
	out := make([]dto.IndicatorResponse, 0, len(inds))
	for _, ind := range inds {
		out = append(out, dto.NewIndicatorResponse(ind))
	}
	c.JSON(http.StatusOK, out)
}

// GetSeries は指標の観測値・統計量・チャート設定をJSONで返します。
//
// エンドポイント例:
// GET /api/indicators/unemployment/series?start=2020-01-01&end=2020-12-31&chart=bar
func (h *IndicatorHandler) GetSeries(c *gin.Context) {
	f := parseForm(c, c.Param("key"))

	res, err := h.uc.GetSeries(c.Request.Context(), f.query())
	if err != nil {
		status := apiStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Warn("series request failed", "indicator", f.Indicator, "status", status, "error", err)
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewSeriesResponse(res, chart.Build(res.Series, f.Chart)))
}
