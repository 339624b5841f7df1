package service

import (
	"context"
	"fmt"
	"time"

	"society_hub/internal/repository"
	"society_hub/pkg/logger"
)

// RateLimitService - скользящее окно на Redis INCR+EXPIRE
type RateLimitService interface {
	Allow(ctx context.Context, scope, key string, limit int, window time.Duration) (bool, error)
}

type rateLimitService struct {
	rateLimitRepo repository.RateLimitRepository
	log           logger.Logger
}

func NewRateLimitService(rateLimitRepo repository.RateLimitRepository, log logger.Logger) RateLimitService {
	return &rateLimitService{rateLimitRepo: rateLimitRepo, log: log}
}

func (s *rateLimitService) Allow(ctx context.Context, scope, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", scope, key)

	ok, err := s.rateLimitRepo.CheckLimit(ctx, redisKey, limit, window)
	if err != nil {
		// При недоступном Redis пропускаем запрос, а не блокируем
		s.log.Warn("Rate limit check failed, allowing request", "error", err)
		return true, nil
	}
	if !ok {
		return false, nil
	}

	if _, err := s.rateLimitRepo.Increment(ctx, redisKey, window); err != nil {
		s.log.Warn("Rate limit increment failed", "error", err)
	}

	return true, nil
}
