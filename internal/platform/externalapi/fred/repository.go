package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fred_dashboard/internal/feature/indicators/domain"
	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
	"fred_dashboard/internal/platform/externalapi/fred/dto"
	"fred_dashboard/internal/platform/metrics"
	"fred_dashboard/internal/shared/ratelimiter"
)

// maxErrorBody limits how much of an error response is read.
const maxErrorBody = 64 << 10

// FredObservations はFRED APIから観測値を取得するSeriesRepository実装です。
type FredObservations struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// FredObservationsがSeriesRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SeriesRepository = (*FredObservations)(nil)

// NewFredObservations は指定された設定とHTTPクライアントでFredObservationsを生成します。
// limiterがnilの場合はレート制限を行いません。
func NewFredObservations(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *FredObservations {
	return &FredObservations{cfg: cfg, client: client, limiter: limiter}
}

// FetchObservations はFRED APIから指定期間の観測値を日付昇順で取得します。
// 値が欠損（"."）の観測値は除外します。
func (f *FredObservations) FetchObservations(ctx context.Context, seriesID string, rng entity.DateRange) ([]entity.Observation, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrDataUnavailable, err)
		}
	}

	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", f.cfg.APIKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "asc")
	q.Set("observation_start", rng.Start.Format(entity.DateLayout))
	q.Set("observation_end", rng.End.Format(entity.DateLayout))

	u := fmt.Sprintf("%s/fred/series/observations?%s", f.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := f.client.Do(req)
	if err != nil {
		metrics.RecordUpstream(seriesID, metrics.StatusError, time.Since(start).Seconds())
		// url.Errorはapi_keyを含むURLを出力するため、原因のみを返す
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("%w: fred request: %v", domain.ErrDataUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		err := statusError(res)
		status := metrics.StatusError
		if errors.Is(err, domain.ErrConfiguration) {
			status = metrics.StatusAuthError
		}
		metrics.RecordUpstream(seriesID, status, time.Since(start).Seconds())
		return nil, err
	}

	var body dto.ObservationsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		metrics.RecordUpstream(seriesID, metrics.StatusError, time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: decode fred response: %v", domain.ErrDataUnavailable, err)
	}

	obs, err := toObservations(body.Observations)
	if err != nil {
		metrics.RecordUpstream(seriesID, metrics.StatusError, time.Since(start).Seconds())
		return nil, err
	}

	status := metrics.StatusOK
	if len(obs) == 0 {
		status = metrics.StatusEmptyResult
	}
	metrics.RecordUpstream(seriesID, status, time.Since(start).Seconds())
	return obs, nil
}

// toObservations は文字列の日付・値をドメインの観測値に変換します。
func toObservations(values []dto.Observation) ([]entity.Observation, error) {
	out := make([]entity.Observation, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v.Value) == dto.MissingValue {
			continue
		}
		d, err := time.Parse(entity.DateLayout, v.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: parse date %q: %v", domain.ErrDataUnavailable, v.Date, err)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: parse value %q: %v", domain.ErrDataUnavailable, v.Value, err)
		}
		out = append(out, entity.Observation{Date: d, Value: val})
	}
	return out, nil
}

// statusError はエラーレスポンスを分類します。
// api_keyに関するエラーは認証情報の問題としてErrConfigurationを返します。
func statusError(res *http.Response) error {
	var body dto.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &body)

	msg := strings.TrimSpace(body.ErrorMessage)
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}

	switch res.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		if strings.Contains(strings.ToLower(msg), "api_key") {
			return fmt.Errorf("%w: fred http %d: %s", domain.ErrConfiguration, res.StatusCode, msg)
		}
	}
	return fmt.Errorf("%w: fred http %d: %s", domain.ErrDataUnavailable, res.StatusCode, msg)
}
