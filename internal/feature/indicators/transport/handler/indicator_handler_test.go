package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fred_dashboard/internal/feature/indicators/domain"
	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/transport/handler"
	"fred_dashboard/internal/feature/indicators/transport/http/dto"
	"fred_dashboard/internal/feature/indicators/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockIndicatorUsecase はIndicatorUsecaseインターフェースのモック実装です。
type mockIndicatorUsecase struct {
	configErr     error
	GetSeriesFunc func(ctx context.Context, q usecase.Query) (*usecase.Result, error)
}

func (m *mockIndicatorUsecase) ListIndicators() []entity.Indicator { return entity.Indicators() }
func (m *mockIndicatorUsecase) ConfigError() error { return m.configErr }
func (m *mockIndicatorUsecase) GetSeries(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
	return m.GetSeriesFunc(ctx, q)
}

// fakeRepository は2020年の月次失業率を返すSeriesRepositoryです。
type fakeRepository struct{}

func (fakeRepository) FetchObservations(ctx context.Context, seriesID string, rng entity.DateRange) ([]entity.Observation, error) {
	values := []float64{3.5, 3.5, 4.4, 14.8, 13.2, 11.0, 10.2, 8.4, 7.9, 6.9, 6.7, 6.7}
	out := make([]entity.Observation, 0, len(values))
	for i, v := range values {
		out = append(out, entity.Observation{Date: time.Date(2020, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC), Value: v})
	}
	return out, nil
}

func gdpResult(t *testing.T) *usecase.Result {
	t.Helper()
	ind, err := entity.LookupIndicator("gdp")
	require.NoError(t, err)
	rng, err := entity.ParseDateRange("2024-01-01", "2024-12-31")
	require.NoError(t, err)
	s, err := entity.NewIndicatorSeries(ind, rng, []entity.Observation{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 28269.174},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Value: 28652.337},
	})
	require.NoError(t, err)
	sum, err := entity.Summarize(s)
	require.NoError(t, err)
	return &usecase.Result{Series: s, Summary: sum}
}

func setupRouter(t *testing.T, uc handler.IndicatorUsecase) *gin.Engine {
	t.Helper()
	h, err := handler.NewIndicatorHandler(uc)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/", h.Dashboard)
	r.GET("/api/indicators", h.ListIndicators)
	r.GET("/api/indicators/:key/series", h.GetSeries)
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

// TestDashboard_Rendered は正常時にチャート・統計量・説明文が描画されることを検証します。
func TestDashboard_Rendered(t *testing.T) {
	var got usecase.Query
	uc := &mockIndicatorUsecase{
		GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
			got = q
			return gdpResult(t), nil
		},
	}

	w := get(setupRouter(t, uc), "/?chart=bar&quarters=12")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, "gdp", got.IndicatorKey)
	assert.Equal(t, 12, got.Quarters)
	assert.Contains(t, body, "Key Statistics")
	assert.Contains(t, body, "Latest Value (2024-Q2)")
	assert.Contains(t, body, "28,652.34 Billions of Dollars")
	assert.Contains(t, body, "+1.36%")
	assert.Contains(t, body, "About this Indicator")
	assert.Contains(t, body, `id="chart-area"`)
	assert.Contains(t, body, `"chartType":"bar"`)
	assert.Contains(t, body, "Gross Domestic Product (GDP) - Last 2 Observations")
	assert.NotContains(t, body, `id="raw-data"`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

// TestDashboard_RawDataUNRATE は2020年の失業率で生データ表に12行が新しい順で表示されることを検証します。
func TestDashboard_RawDataUNRATE(t *testing.T) {
	uc := usecase.NewIndicatorUsecase(fakeRepository{}, nil)

	w := get(setupRouter(t, uc), "/?indicator=UNRATE&start=2020-01-01&end=2020-12-31&raw=1")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	start := strings.Index(body, `<table id="raw-data">`)
	require.GreaterOrEqual(t, start, 0, "raw table must be rendered")
	table := body[start:]
	table = table[:strings.Index(table, "</table>")]

	assert.Equal(t, 12, strings.Count(table, "<tr><td>2020-"))
	assert.Less(t, strings.Index(table, "2020-12-01"), strings.Index(table, "2020-01-01"), "newest first")
	assert.Contains(t, table, "<td>14.80</td>")
	assert.Contains(t, body, "Unemployment Rate - Last 12 Observations")
	assert.Contains(t, body, `<option value="unemployment" selected>`)
}

// TestDashboard_ConfigurationError は設定エラー時にバナーを表示し、取得もチャート描画もしないことを検証します。
func TestDashboard_ConfigurationError(t *testing.T) {
	called := false
	uc := &mockIndicatorUsecase{
		configErr: fmt.Errorf("%w: FRED API key not found", domain.ErrConfiguration),
		GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
			called = true
			return nil, nil
		},
	}

	w := get(setupRouter(t, uc), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, called, "no fetch may be attempted without a credential")
	assert.Contains(t, w.Body.String(), `class="banner"`)
	assert.Contains(t, w.Body.String(), "FRED API key not found")
	assert.NotContains(t, w.Body.String(), `id="chart-area"`)
}

func TestDashboard_ErrorStates(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		err            error
		expectedStatus int
		expectedText   string
		expectedClass  string
	}{
		{
			name:           "invalid api key shows banner",
			url:            "/?indicator=cpi",
			err:            fmt.Errorf("%w: fred http 400: api_key is not registered", domain.ErrConfiguration),
			expectedStatus: http.StatusOK,
			expectedText:   "api_key is not registered",
			expectedClass:  `class="banner"`,
		},
		{
			name:           "upstream failure shows no data message",
			url:            "/?indicator=unemployment",
			err:            fmt.Errorf("%w: fred http 500", domain.ErrDataUnavailable),
			expectedStatus: http.StatusOK,
			expectedText:   "No data available for Unemployment Rate. Please try another indicator.",
			expectedClass:  `class="message"`,
		},
		{
			name:           "unknown indicator is a bad request",
			url:            "/?indicator=bitcoin",
			err:            fmt.Errorf("%w: %q", domain.ErrUnknownIndicator, "bitcoin"),
			expectedStatus: http.StatusBadRequest,
			expectedText:   "unknown indicator",
			expectedClass:  `class="message"`,
		},
		{
			name:           "inverted range is a bad request",
			url:            "/?start=2024-12-31&end=2024-01-01",
			err:            fmt.Errorf("%w: end before start", domain.ErrInvalidRange),
			expectedStatus: http.StatusBadRequest,
			expectedText:   "invalid date range",
			expectedClass:  `class="message"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockIndicatorUsecase{
				GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
					return nil, tt.err
				},
			}

			w := get(setupRouter(t, uc), tt.url)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedClass)
			assert.Contains(t, w.Body.String(), tt.expectedText)
			assert.NotContains(t, w.Body.String(), `id="chart-area"`)
		})
	}
}

// TestDashboard_QuartersOutOfRange は範囲外の四半期数がデフォルト値に戻されることを検証します。
func TestDashboard_QuartersOutOfRange(t *testing.T) {
	var got usecase.Query
	uc := &mockIndicatorUsecase{
		GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
			got = q
			return gdpResult(t), nil
		},
	}

	w := get(setupRouter(t, uc), "/?quarters=99")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.DefaultQuarters, got.Quarters)
	assert.Contains(t, w.Body.String(), `value="8"`)
}

// TestDashboard_QuartersSliderClearsDates は日付指定中でもスライダー操作が表示期間に反映されるよう、
// スライダーの変更時に開始日と終了日を空にしてから送信することを検証します。
func TestDashboard_QuartersSliderClearsDates(t *testing.T) {
	uc := &mockIndicatorUsecase{
		GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
			return gdpResult(t), nil
		},
	}

	w := get(setupRouter(t, uc), "/?start=2024-01-01&end=2024-06-30&quarters=12")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="start" name="start" value="2024-01-01"`)
	assert.Contains(t, body, `id="end" name="end" value="2024-06-30"`)

	start := strings.Index(body, `id="quarters"`)
	require.GreaterOrEqual(t, start, 0, "slider must be rendered")
	slider := body[start:]
	slider = slider[:strings.Index(slider, ">")]
	assert.Contains(t, slider, `onchange="this.form.start.value = ''; this.form.end.value = ''; this.form.submit()"`)
	assert.Contains(t, body, "Moving the slider clears the start and end dates.")
}

func TestAPI_ListIndicators(t *testing.T) {
	w := get(setupRouter(t, &mockIndicatorUsecase{}), "/api/indicators")

	require.Equal(t, http.StatusOK, w.Code)
	var out []dto.IndicatorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 7)
	assert.Equal(t, "gdp", out[0].Key)
	assert.Equal(t, "GDP", out[0].SeriesID)
}

func TestAPI_GetSeries(t *testing.T) {
	uc := usecase.NewIndicatorUsecase(fakeRepository{}, nil)

	w := get(setupRouter(t, uc), "/api/indicators/unemployment/series?start=2020-01-01&end=2020-12-31&chart=area")

	require.Equal(t, http.StatusOK, w.Code)
	var out dto.SeriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	assert.Equal(t, "UNRATE", out.Indicator.SeriesID)
	assert.Equal(t, dto.RangeResponse{Start: "2020-01-01", End: "2020-12-31"}, out.Range)
	require.Len(t, out.Observations, 12)
	assert.Equal(t, "2020-01-01", out.Observations[0].Date)
	assert.Equal(t, "2020-Q4", out.Observations[11].Period)
	assert.Equal(t, 12, out.Summary.Count)
	assert.Equal(t, 14.8, out.Summary.Max)
	assert.Equal(t, "2020-04-01", out.Summary.MaxDate)
	assert.LessOrEqual(t, out.Summary.Min, out.Summary.Mean)
	assert.LessOrEqual(t, out.Summary.Mean, out.Summary.Max)
	require.NotNil(t, out.Chart)
	assert.Equal(t, "area", string(out.Chart.ChartType))
	assert.Len(t, out.Chart.Series[0].Data, 12)
}

func TestAPI_GetSeries_Errors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"configuration", domain.ErrConfiguration, http.StatusServiceUnavailable},
		{"unknown indicator", domain.ErrUnknownIndicator, http.StatusNotFound},
		{"invalid range", domain.ErrInvalidRange, http.StatusBadRequest},
		{"data unavailable", domain.ErrDataUnavailable, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockIndicatorUsecase{
				GetSeriesFunc: func(ctx context.Context, q usecase.Query) (*usecase.Result, error) {
					return nil, tt.err
				},
			}

			w := get(setupRouter(t, uc), "/api/indicators/gdp/series")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.err.Error()), w.Body.String())
		})
	}
}
