// Package store holds the storage collaborators around the matching
// engine: snapshot reads, match profile persistence and candidate
// search. The engine itself never touches storage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/common/validation"
	"recruit-match/internal/models"
)

// Pool queries fetch a multiple of the requested limit so that ranking
// still fills the page after low scores are filtered out.
const poolOverfetchFactor = 10

// SnapshotStore reads immutable candidate and job posting snapshots
// from PostgreSQL, with a Redis read-through cache keyed by entity ID.
// Payloads are validated against the snapshot contract before decoding.
type SnapshotStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewSnapshotStore builds a snapshot store. cacheTTL of zero disables
// cache writes but reads still work.
func NewSnapshotStore(db *sql.DB, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *SnapshotStore {
	return &SnapshotStore{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "snapshot-store"}),
	}
}

// GetCandidate loads one candidate snapshot by ID.
func (s *SnapshotStore) GetCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	cacheKey := "candidate:" + id.String()
	if payload := s.cacheGet(ctx, cacheKey); payload != nil {
		var candidate models.Candidate
		if err := json.Unmarshal(payload, &candidate); err == nil {
			return &candidate, nil
		}
	}

	var payload []byte
	query := `SELECT payload FROM candidate_snapshots WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewCandidateNotFoundError(id.String())
		}
		return nil, errors.NewQueryExecutionFailedError("candidate", err)
	}

	if err := validation.ValidateCandidateSnapshot(payload); err != nil {
		return nil, err
	}

	var candidate models.Candidate
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return nil, errors.NewSnapshotInvalidError(fmt.Sprintf("candidate %s: %v", id, err))
	}

	s.cacheSet(ctx, cacheKey, payload)
	return &candidate, nil
}

// GetJobPosting loads one job posting snapshot by ID.
func (s *SnapshotStore) GetJobPosting(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	cacheKey := "job:" + id.String()
	if payload := s.cacheGet(ctx, cacheKey); payload != nil {
		var job models.JobPosting
		if err := json.Unmarshal(payload, &job); err == nil {
			return &job, nil
		}
	}

	var payload []byte
	query := `SELECT payload FROM job_posting_snapshots WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewJobPostingNotFoundError(id.String())
		}
		return nil, errors.NewQueryExecutionFailedError("job_posting", err)
	}

	if err := validation.ValidateJobPostingSnapshot(payload); err != nil {
		return nil, err
	}

	var job models.JobPosting
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, errors.NewSnapshotInvalidError(fmt.Sprintf("job posting %s: %v", id, err))
	}

	s.cacheSet(ctx, cacheKey, payload)
	return &job, nil
}

// ListActiveCandidates returns the ranking pool for a job: active
// candidates, overfetched beyond the requested page size. Rows whose
// payload fails validation are skipped, not fatal.
func (s *SnapshotStore) ListActiveCandidates(ctx context.Context, limit int) ([]*models.Candidate, error) {
	query := `SELECT payload FROM candidate_snapshots WHERE status = 'active' ORDER BY updated_at DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit*poolOverfetchFactor)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("candidate", err)
	}
	defer rows.Close()

	var pool []*models.Candidate
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewQueryExecutionFailedError("candidate", err)
		}

		var candidate models.Candidate
		if err := validation.ValidateCandidateSnapshot(payload); err != nil {
			s.logSkippedRow("candidate", err)
			continue
		}
		if err := json.Unmarshal(payload, &candidate); err != nil {
			s.logSkippedRow("candidate", err)
			continue
		}
		pool = append(pool, &candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("candidate", err)
	}

	return pool, nil
}

// ListActiveJobPostings returns the ranking pool for a candidate.
func (s *SnapshotStore) ListActiveJobPostings(ctx context.Context, limit int) ([]*models.JobPosting, error) {
	query := `SELECT payload FROM job_posting_snapshots WHERE status = 'open' ORDER BY updated_at DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit*poolOverfetchFactor)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("job_posting", err)
	}
	defer rows.Close()

	var pool []*models.JobPosting
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewQueryExecutionFailedError("job_posting", err)
		}

		var job models.JobPosting
		if err := validation.ValidateJobPostingSnapshot(payload); err != nil {
			s.logSkippedRow("job_posting", err)
			continue
		}
		if err := json.Unmarshal(payload, &job); err != nil {
			s.logSkippedRow("job_posting", err)
			continue
		}
		pool = append(pool, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("job_posting", err)
	}

	return pool, nil
}

func (s *SnapshotStore) cacheGet(ctx context.Context, key string) []byte {
	if s.redis == nil {
		return nil
	}
	val, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return val
}

func (s *SnapshotStore) cacheSet(ctx context.Context, key string, payload []byte) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.redis.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *SnapshotStore) logSkippedRow(entity string, err error) {
	s.logger.Warn("Skipping snapshot row", map[string]interface{}{
		"entity": entity,
		"error":  err.Error(),
	})
}
