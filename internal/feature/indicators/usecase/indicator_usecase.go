// Package usecase は経済指標ダッシュボードのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"fred_dashboard/internal/feature/indicators/domain"
	"fred_dashboard/internal/feature/indicators/domain/entity"
)

const (
	// DefaultQuarters は期間未指定時に表示する四半期数です。
	DefaultQuarters = 8
	// MinQuarters は選択可能な最小四半期数です。
	MinQuarters = 4
	// MaxQuarters は選択可能な最大四半期数です。
	MaxQuarters = 20

	// DefaultFetchTimeout は共有された外部API取得1回の上限時間です。
	DefaultFetchTimeout = 30 * time.Second
)

// SeriesRepository は外部APIから観測値を取得するリポジトリを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SeriesRepository interface {
	// FetchObservations は指定シリーズの期間内の観測値を取得します。
	FetchObservations(ctx context.Context, seriesID string, rng entity.DateRange) ([]entity.Observation, error)
}

// Query は1回の画面操作で指定される条件です。
type Query struct {
	IndicatorKey string // 指標キーまたはFREDシリーズID。空ならDefaultIndicatorKey
	Quarters     int    // 遡る四半期数。Start/Endが指定された場合は無視
	Start        string // YYYY-MM-DD（任意）
	End          string // YYYY-MM-DD（任意）
}

// Result は取得した系列とその統計量です。
type Result struct {
	Series  *entity.IndicatorSeries
	Summary entity.Summary
}

// IndicatorUsecase は指標データの取得ユースケースを提供します。
type IndicatorUsecase struct {
	series       SeriesRepository
	configErr    error
	group        singleflight.Group
	fetchTimeout time.Duration
	now          func() time.Time
}

// NewIndicatorUsecase はIndicatorUsecaseの新しいインスタンスを生成します。
// configErrが非nilの場合、すべての取得要求は外部APIを呼ばずにそのエラーを返します。
func NewIndicatorUsecase(series SeriesRepository, configErr error) *IndicatorUsecase {
	return &IndicatorUsecase{series: series, configErr: configErr, fetchTimeout: DefaultFetchTimeout, now: time.Now}
}

// WithFetchTimeout は共有取得の上限時間を設定します。0以下の値は無視されます。
func (u *IndicatorUsecase) WithFetchTimeout(d time.Duration) *IndicatorUsecase {
	if d > 0 {
		u.fetchTimeout = d
	}
	return u
}

// FetchTimeout は共有取得の上限時間を返します。
func (u *IndicatorUsecase) FetchTimeout() time.Duration {
	return u.fetchTimeout
}

// ListIndicators は選択可能な指標の一覧を表示順で返します。
func (u *IndicatorUsecase) ListIndicators() []entity.Indicator {
	return entity.Indicators()
}

// ConfigError は起動時に検出された設定エラーを返します。
func (u *IndicatorUsecase) ConfigError() error {
	return u.configErr
}

// ResolveRange はクエリから取得期間を決定します。
// Start/Endのどちらかが指定されていればそれを優先し、なければ直近の四半期数から算出します。
func (u *IndicatorUsecase) ResolveRange(q Query) (entity.DateRange, error) {
	today := u.now().UTC()
	if q.Start == "" && q.End == "" {
		return entity.LastQuarters(today, NormalizeQuarters(q.Quarters)), nil
	}

	end := q.End
	if end == "" {
		end = today.Format(entity.DateLayout)
	}
	start := q.Start
	if start == "" {
		e, err := time.Parse(entity.DateLayout, end)
		if err != nil {
			return entity.DateRange{}, fmt.Errorf("%w: end %q: %v", domain.ErrInvalidRange, end, err)
		}
		start = entity.LastQuarters(e, DefaultQuarters).Start.Format(entity.DateLayout)
	}
	return entity.ParseDateRange(start, end)
}

// GetSeries は指標の系列を取得し、統計量を計算します。
// 同一条件の同時リクエストは1回の外部API呼び出しにまとめられます。
func (u *IndicatorUsecase) GetSeries(ctx context.Context, q Query) (*Result, error) {
	if u.configErr != nil {
		return nil, u.configErr
	}

	key := q.IndicatorKey
	if key == "" {
		key = entity.DefaultIndicatorKey
	}
	ind, err := entity.LookupIndicator(key)
	if err != nil {
		return nil, err
	}
	rng, err := u.ResolveRange(q)
	if err != nil {
		return nil, err
	}

	slog.Info("fetching indicator", "indicator", ind.Name, "series_id", ind.SeriesID, "range", rng.String())

	// 共有取得は呼び出し元のキャンセルから切り離し、fetchTimeoutで打ち切る。
	// 各呼び出し元は自分のctxが終われば結果を待たずに戻る。
	flightKey := ind.SeriesID + ":" + rng.String()
	ch := u.group.DoChan(flightKey, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.fetchTimeout)
		defer cancel()
		return u.series.FetchObservations(fctx, ind.SeriesID, rng)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		err = classify(ind, ctx.Err())
		slog.Warn("indicator fetch abandoned", "series_id", ind.SeriesID, "error", err)
		return nil, err
	case res = <-ch:
	}
	if res.Err != nil {
		err = classify(ind, res.Err)
		slog.Warn("indicator fetch failed", "series_id", ind.SeriesID, "error", err)
		return nil, err
	}
	obs, _ := res.Val.([]entity.Observation)
	shared := res.Shared

	s, err := entity.NewIndicatorSeries(ind, rng, obs)
	if err != nil {
		slog.Warn("no data returned", "series_id", ind.SeriesID, "range", rng.String(), "error", err)
		return nil, err
	}
	sum, err := entity.Summarize(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	slog.Info("successfully retrieved data points",
		"indicator", ind.Name, "series_id", ind.SeriesID, "points", s.Len(), "shared", shared)
	return &Result{Series: s, Summary: sum}, nil
}

// classify は外部APIのエラーをドメインのエラー種別に揃えます。
// 認証情報エラーはそのまま、それ以外はすべてErrDataUnavailableとして扱います。
func classify(ind entity.Indicator, err error) error {
	if errors.Is(err, domain.ErrConfiguration) || errors.Is(err, domain.ErrDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: fetching %s data: %v", domain.ErrDataUnavailable, ind.Name, err)
}

// NormalizeQuarters は範囲外の四半期数をDefaultQuartersに置き換えます。
func NormalizeQuarters(n int) int {
	if n < MinQuarters || n > MaxQuarters {
		return DefaultQuarters
	}
	return n
}
