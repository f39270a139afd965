package scoring

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/inkfold/tourney/models"
)

// RateLimited wraps a judge so every call waits on a shared rate limiter.
// Concurrent match evaluation can then be bounded by judging-service rate
// limits rather than by the worker count alone.
func RateLimited(judge models.Judge, limiter *rate.Limiter) models.Judge {
	return &rateLimitedJudge{judge: judge, limiter: limiter}
}

type rateLimitedJudge struct {
	judge   models.Judge
	limiter *rate.Limiter
}

func (r *rateLimitedJudge) Judge(ctx context.Context, a, b models.Candidate, criterion *models.JudgingCriterion, params map[string]string) (models.Verdict, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Verdict{}, err
	}
	return r.judge.Judge(ctx, a, b, criterion, params)
}
