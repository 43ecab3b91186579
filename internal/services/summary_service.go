package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregate"
	"fintrack/internal/cache"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/query"
)

const cacheCallTimeout = 200 * time.Millisecond

// SummaryCache holds unfiltered per-user summaries. Cache failures are
// logged and treated as misses; a nil *SummaryCache disables caching.
type SummaryCache struct {
	backend cache.Cache
	ttl     time.Duration
}

// NewSummaryCache wraps a cache backend.
func NewSummaryCache(backend cache.Cache, ttl time.Duration) *SummaryCache {
	return &SummaryCache{backend: backend, ttl: ttl}
}

func summaryKey(userID string) string {
	return "summary:" + userID
}

func (c *SummaryCache) load(userID string) (*Summary, bool) {
	if c == nil || c.backend == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheCallTimeout)
	defer cancel()

	raw, ok, err := c.backend.Get(ctx, summaryKey(userID))
	if err != nil {
		logger.Get().Warnw("summary cache read failed", "error", err, "user_id", userID)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		logger.Get().Warnw("discarding unreadable cached summary", "error", err, "user_id", userID)
		return nil, false
	}
	return &s, true
}

func (c *SummaryCache) store(userID string, s *Summary) {
	if c == nil || c.backend == nil {
		return
	}
	raw, err := json.Marshal(s)
	if err != nil {
		logger.Get().Warnw("failed to encode summary for cache", "error", err, "user_id", userID)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheCallTimeout)
	defer cancel()
	if err := c.backend.Set(ctx, summaryKey(userID), raw, c.ttl); err != nil {
		logger.Get().Warnw("summary cache write failed", "error", err, "user_id", userID)
	}
}

// Invalidate drops the cached summary of userID. Every write path calls it.
func (c *SummaryCache) Invalidate(userID string) {
	if c == nil || c.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheCallTimeout)
	defer cancel()
	if err := c.backend.Delete(ctx, summaryKey(userID)); err != nil {
		logger.Get().Warnw("summary cache invalidation failed", "error", err, "user_id", userID)
	}
}

// summaryService computes balance sheets from active transactions.
type summaryService struct {
	db    *gorm.DB
	cache *SummaryCache
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, summaryCache *SummaryCache) SummaryServicer {
	return &summaryService{db: db, cache: summaryCache}
}

// GetSummary returns totals and breakdowns. Only the unfiltered summary is cached.
func (s *summaryService) GetSummary(userID string, dateRange query.Params) (*Summary, error) {
	unfiltered := dateRange.StartDate == nil && dateRange.EndDate == nil
	if unfiltered {
		if cached, ok := s.cache.load(userID); ok {
			return cached, nil
		}
	}

	expenses, incomes, err := loadActive(s.db, userID, dateRange)
	if err != nil {
		return nil, err
	}
	summary := buildSummary(expenses, incomes)

	if unfiltered {
		s.cache.store(userID, summary)
	}
	return summary, nil
}

// loadActive loads a user's active expenses and incomes within dateRange.
func loadActive(db *gorm.DB, userID string, dateRange query.Params) ([]models.Expense, []models.Income, error) {
	expenses, err := listByUser[models.Expense](db, userID, ActiveOnly)
	if err != nil {
		return nil, nil, err
	}
	incomes, err := listByUser[models.Income](db, userID, ActiveOnly)
	if err != nil {
		return nil, nil, err
	}
	return query.ByDateRange(expenses, dateRange), query.ByDateRange(incomes, dateRange), nil
}

func buildSummary(expenses []models.Expense, incomes []models.Income) *Summary {
	return &Summary{
		Summary:           aggregate.Summarize(expenses, incomes),
		ExpenseByCategory: aggregate.ByLabel(expenses),
		IncomeBySource:    aggregate.ByLabel(incomes),
		MonthlyExpenses:   aggregate.Monthly(expenses),
		MonthlyIncome:     aggregate.Monthly(incomes),
	}
}
