package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"loan-calculator/domain"
	"loan-calculator/metrics"
	"loan-calculator/repository"
)

const cacheKeyPrefix = "loan:"

type LoanService struct {
	calculator LoanCalculator
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewLoanService creates a LoanService. cache may be nil to disable result
// caching.
func NewLoanService(cache repository.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *LoanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanService{
		calculator: NewLoanCalculator(),
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Calculate parses the raw input, then returns the cached result for the
// same parameters or computes a fresh one. Input errors are *domain.InputError.
func (s *LoanService) Calculate(ctx context.Context, input domain.LoanInput) (domain.Quote, error) {
	params, err := ParseLoanInput(input)
	if err != nil {
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			metrics.InputErrors.WithLabelValues(inputErr.Field).Inc()
			s.logger.DebugContext(ctx, "rejected loan input", "field", inputErr.Field, "error", inputErr.Err)
		}
		return domain.Quote{}, err
	}

	key := cacheKey(params)
	if result, ok := s.lookup(ctx, key); ok {
		return domain.NewQuote(params, result, true), nil
	}

	result := s.calculator.Calculate(params)
	s.observe(params)
	s.store(ctx, key, result)

	return domain.NewQuote(params, result, false), nil
}

func (s *LoanService) observe(params domain.LoanParams) {
	branch := "annuity"
	if s.calculator.ZeroRate(params) {
		branch = "zero_rate"
	}
	metrics.Calculations.WithLabelValues(branch).Inc()
}

func (s *LoanService) lookup(ctx context.Context, key string) (domain.LoanResult, bool) {
	if s.cache == nil {
		return domain.LoanResult{}, false
	}

	raw, err := s.cache.Get(ctx, key)
	if errors.Is(err, repository.ErrCacheMiss) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.LoanResult{}, false
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "cache lookup failed", "key", key, "error", err)
		return domain.LoanResult{}, false
	}

	var result domain.LoanResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "discarding corrupt cache entry", "key", key, "error", err)
		return domain.LoanResult{}, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return result, true
}

// store saves the result; failures are logged and never reach the caller.
func (s *LoanService) store(ctx context.Context, key string, result domain.LoanResult) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode loan result", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache loan result", "key", key, "error", err)
	}
}

func cacheKey(params domain.LoanParams) string {
	return fmt.Sprintf("%s%s|%s|%s",
		cacheKeyPrefix,
		params.Principal().String(),
		params.AnnualRatePercent().String(),
		strconv.Itoa(params.TermYears()),
	)
}
