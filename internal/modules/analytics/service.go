package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/freshline/supply-backend/internal/apperr"
	"github.com/freshline/supply-backend/internal/logger"
	"github.com/freshline/supply-backend/internal/modules/reservation"
)

// Service defines the read-only aggregation engine. Nothing here opens a
// transaction scope or mutates state.
type Service interface {
	// Demand sums pending or approved reservation quantity grouped by a
	// chosen dimension within a date range.
	Demand(ctx context.Context, status reservation.Status, dim Dimension, from, to time.Time) ([]*DemandRow, error)
	// SeasonalConsumption buckets one year's fulfilled reservations into
	// seasons, summed per fruit.
	SeasonalConsumption(ctx context.Context, year int) ([]*SeasonTotal, error)
	// Forecast computes the average daily consumption of a fruit over an
	// inclusive date range, rounded half-up to two decimals. An empty or
	// inverted range yields the zero forecast.
	Forecast(ctx context.Context, fruitID int64, from, to time.Time) (*Forecast, error)
}

type service struct {
	repo  Repository
	cache ProjectionStore // nil disables caching
	log   logger.Logger
}

// NewService creates a new analytics service. cache may be nil.
func NewService(repo Repository, cache ProjectionStore, log logger.Logger) Service {
	return &service{repo: repo, cache: cache, log: log}
}

func (s *service) Demand(ctx context.Context, status reservation.Status, dim Dimension, from, to time.Time) ([]*DemandRow, error) {
	if status != reservation.StatusPending && status != reservation.StatusApproved {
		return nil, apperr.Validation("demand reports cover PENDING or APPROVED reservations, got %s", status)
	}

	key := demandKey(status, dim, from, to)
	var cached []*DemandRow
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.repo.DemandByDimension(ctx, status, dim, from, endExclusive(to))
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, rows)
	return rows, nil
}

func (s *service) SeasonalConsumption(ctx context.Context, year int) ([]*SeasonTotal, error) {
	key := seasonalKey(year)
	var cached []*SeasonTotal
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	monthly, err := s.repo.MonthlyFulfilled(ctx, year)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		fruitID int64
		season  Season
	}
	names := make(map[int64]string)
	totals := make(map[bucket]int)
	for _, m := range monthly {
		names[m.FruitID] = m.FruitName
		totals[bucket{m.FruitID, SeasonOf(m.Month)}] += m.Total
	}

	result := make([]*SeasonTotal, 0, len(totals))
	for b, total := range totals {
		result = append(result, &SeasonTotal{
			FruitID:   b.fruitID,
			FruitName: names[b.fruitID],
			Season:    b.season,
			Total:     total,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FruitName != result[j].FruitName {
			return result[i].FruitName < result[j].FruitName
		}
		return result[i].Season < result[j].Season
	})

	s.cacheSet(ctx, key, result)
	return result, nil
}

func (s *service) Forecast(ctx context.Context, fruitID int64, from, to time.Time) (*Forecast, error) {
	days := inclusiveDays(from, to)
	if days <= 0 {
		return &Forecast{FruitID: fruitID}, nil
	}

	key := forecastKey(fruitID, from, to)
	var cached Forecast
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	total, err := s.repo.FulfilledTotal(ctx, fruitID, from, endExclusive(to))
	if err != nil {
		return nil, err
	}

	f := &Forecast{
		FruitID:      fruitID,
		Total:        total,
		Days:         days,
		DailyAverage: roundedAverage(total, days),
	}
	s.cacheSet(ctx, key, f)
	return f, nil
}

// inclusiveDays counts calendar days from from to to, both ends included.
// An inverted range counts as zero.
func inclusiveDays(from, to time.Time) int {
	if from.After(to) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// endExclusive converts the inclusive end date of a report range into the
// exclusive upper bound the repository queries take. Reservations carry full
// timestamps, so records landing after midnight of the end day must still
// fall inside the range.
func endExclusive(to time.Time) time.Time {
	return to.AddDate(0, 0, 1)
}

// roundedAverage divides total by days and rounds half-up to two decimal
// places using integer arithmetic, so 100/3 is exactly 33.33.
func roundedAverage(total, days int) float64 {
	n := total * 100
	q, r := n/days, n%days
	if 2*r >= days {
		q++
	}
	return float64(q) / 100
}

func (s *service) cacheGet(ctx context.Context, key string, v any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, v)
	if err != nil {
		s.log.WarnContext(ctx, "projection cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v); err != nil {
		s.log.WarnContext(ctx, "projection cache write failed", "key", key, "error", err)
	}
}
