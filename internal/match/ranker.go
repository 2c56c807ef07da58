package match

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/common/metrics"
	"recruit-match/internal/models"
)

// Ranking directions, used as metric labels.
const (
	directionCandidatesForJob = "candidates_for_job"
	directionJobsForCandidate = "jobs_for_candidate"
)

// RankOptions controls a single bulk ranking call. Zero values fall back
// to the ranker's configured defaults.
type RankOptions struct {
	MinScore float64
	Limit    int
}

// Ranker scores an anchor entity against a pool and returns the results
// sorted by descending score. Pool members are scored concurrently; a
// panic while scoring one member skips that member instead of failing
// the whole call.
type Ranker struct {
	aggregator *Aggregator
	logger     logger.Logger
	workers    int
	minScore   float64
	limit      int
}

// NewRanker builds a ranker around an aggregator. workers caps the
// scoring goroutines; 0 or less means one per CPU. minScore and limit
// are defaults applied when RankOptions leaves them zero.
func NewRanker(aggregator *Aggregator, log logger.Logger, workers int, minScore float64, limit int) *Ranker {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if limit <= 0 {
		limit = 100
	}
	return &Ranker{
		aggregator: aggregator,
		logger:     log,
		workers:    workers,
		minScore:   minScore,
		limit:      limit,
	}
}

// RankCandidatesForJob scores every candidate in the pool against the
// job and returns the top matches.
func (r *Ranker) RankCandidatesForJob(ctx context.Context, job *models.JobPosting, pool []*models.Candidate, opts RankOptions) ([]*models.MatchResult, error) {
	if job == nil {
		return nil, errors.NewJobPostingNotFoundError("")
	}

	return r.rank(ctx, directionCandidatesForJob, len(pool), opts, func(i int) *models.MatchResult {
		if pool[i] == nil {
			return nil
		}
		return r.aggregator.Score(pool[i], job)
	})
}

// RankJobsForCandidate scores the candidate against every job posting in
// the pool and returns the top matches.
func (r *Ranker) RankJobsForCandidate(ctx context.Context, candidate *models.Candidate, pool []*models.JobPosting, opts RankOptions) ([]*models.MatchResult, error) {
	if candidate == nil {
		return nil, errors.NewCandidateNotFoundError("")
	}

	return r.rank(ctx, directionJobsForCandidate, len(pool), opts, func(i int) *models.MatchResult {
		if pool[i] == nil {
			return nil
		}
		return r.aggregator.Score(candidate, pool[i])
	})
}

// rank fans pool indices out to a bounded set of scoring goroutines,
// then filters, sorts and truncates the results on the calling
// goroutine. Results are deterministic for a given pool regardless of
// worker scheduling.
func (r *Ranker) rank(ctx context.Context, direction string, poolSize int, opts RankOptions, scoreAt func(int) *models.MatchResult) ([]*models.MatchResult, error) {
	start := time.Now()
	metrics.PoolSize.WithLabelValues(direction).Observe(float64(poolSize))

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = r.minScore
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = r.limit
	}

	if poolSize == 0 {
		return []*models.MatchResult{}, nil
	}

	workers := r.workers
	if workers > poolSize {
		workers = poolSize
	}

	jobs := make(chan int)
	results := make(chan *models.MatchResult, poolSize)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if result := r.scoreMember(direction, i, scoreAt); result != nil {
					results <- result
				}
			}
		}()
	}

	feedErr := func() error {
		defer close(jobs)
		for i := 0; i < poolSize; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- i:
			}
		}
		return nil
	}()

	wg.Wait()
	close(results)
	if feedErr != nil {
		return nil, feedErr
	}

	ranked := make([]*models.MatchResult, 0, poolSize)
	for result := range results {
		if result.OverallScore >= minScore {
			ranked = append(ranked, result)
		}
	}

	// Descending score, ties broken by IDs so identical pools always
	// produce identical orderings.
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].OverallScore != ranked[b].OverallScore {
			return ranked[a].OverallScore > ranked[b].OverallScore
		}
		if ranked[a].CandidateID != ranked[b].CandidateID {
			return ranked[a].CandidateID.String() < ranked[b].CandidateID.String()
		}
		return ranked[a].JobPostingID.String() < ranked[b].JobPostingID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	metrics.RankingDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
	r.logger.Info("Ranking completed", map[string]interface{}{
		"direction": direction,
		"poolSize":  poolSize,
		"returned":  len(ranked),
		"minScore":  minScore,
		"limit":     limit,
		"duration":  time.Since(start).String(),
	})

	return ranked, nil
}

// scoreMember scores one pool member, converting a nil member or a
// scoring panic into a skip.
func (r *Ranker) scoreMember(direction string, i int, scoreAt func(int) *models.MatchResult) (result *models.MatchResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			metrics.PairsSkipped.WithLabelValues("panic").Inc()
			r.logger.Warn("Skipping pool member after scoring panic", map[string]interface{}{
				"direction": direction,
				"index":     i,
				"panic":     fmt.Sprintf("%v", rec),
			})
		}
	}()

	result = scoreAt(i)
	if result == nil {
		metrics.PairsSkipped.WithLabelValues("nil_member").Inc()
		return nil
	}
	metrics.PairsScored.WithLabelValues(direction).Inc()
	return result
}
