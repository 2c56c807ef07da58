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
	"recruit-match/internal/models"
)

// ProfileStore persists match profiles in PostgreSQL. The write path is
// a single atomic upsert keyed by (candidate_id, job_posting_id), so
// concurrent saves for the same pair can never create duplicate rows.
type ProfileStore struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewProfileStore(db *sql.DB, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileStore {
	return &ProfileStore{
		db:       db,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

// BuildProfile shapes a match result into its persisted form.
func BuildProfile(result *models.MatchResult, candidate *models.Candidate, job *models.JobPosting) *models.MatchProfile {
	return &models.MatchProfile{
		ID:           uuid.New(),
		CandidateID:  result.CandidateID,
		JobPostingID: result.JobPostingID,
		ProfileName:  fmt.Sprintf("%s - %s at %s", candidate.FullName, job.Title, job.Client),
		CompanyName:  job.Client,
		RoleTitle:    job.Title,
		MatchScore:   result.OverallScore,
		MatchDetails: result,
		Status:       "active",
	}
}

// SaveProfile upserts a profile for its (candidate, job) pair and
// returns the stored row. A repeat save replaces the previous score and
// details but keeps the original row ID and creation time.
func (s *ProfileStore) SaveProfile(ctx context.Context, profile *models.MatchProfile) (*models.MatchProfile, error) {
	details, err := json.Marshal(profile.MatchDetails)
	if err != nil {
		return nil, errors.NewProfileSaveFailedError(err)
	}

	query := `
		INSERT INTO match_profiles (
			id, candidate_id, job_posting_id, profile_name, company_name,
			role_title, match_score, match_details, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (candidate_id, job_posting_id) DO UPDATE SET
			profile_name = EXCLUDED.profile_name,
			company_name = EXCLUDED.company_name,
			role_title = EXCLUDED.role_title,
			match_score = EXCLUDED.match_score,
			match_details = EXCLUDED.match_details,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	saved := *profile
	err = s.db.QueryRowContext(ctx, query,
		profile.ID.String(),
		profile.CandidateID.String(),
		profile.JobPostingID.String(),
		profile.ProfileName,
		profile.CompanyName,
		profile.RoleTitle,
		profile.MatchScore,
		details,
		profile.Status,
	).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, errors.NewProfileSaveFailedError(err)
	}

	s.invalidate(ctx, saved.CandidateID, saved.JobPostingID)

	s.logger.Info("Match profile saved", map[string]interface{}{
		"profileId":    saved.ID.String(),
		"candidateId":  saved.CandidateID.String(),
		"jobPostingId": saved.JobPostingID.String(),
		"matchScore":   saved.MatchScore,
	})
	return &saved, nil
}

// FindProfile looks up the profile for a (candidate, job) pair.
func (s *ProfileStore) FindProfile(ctx context.Context, candidateID, jobPostingID uuid.UUID) (*models.MatchProfile, error) {
	cacheKey := profileCacheKey(candidateID, jobPostingID)
	if s.redis != nil {
		if val, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var profile models.MatchProfile
			if err := json.Unmarshal(val, &profile); err == nil {
				return &profile, nil
			}
		}
	}

	query := `
		SELECT id, candidate_id, job_posting_id, profile_name, company_name,
			role_title, match_score, match_details, status, created_at, updated_at
		FROM match_profiles
		WHERE candidate_id = $1 AND job_posting_id = $2`

	var (
		profile    models.MatchProfile
		idStr      string
		candStr    string
		jobStr     string
		detailsRaw []byte
	)
	err := s.db.QueryRowContext(ctx, query, candidateID.String(), jobPostingID.String()).Scan(
		&idStr, &candStr, &jobStr,
		&profile.ProfileName, &profile.CompanyName, &profile.RoleTitle,
		&profile.MatchScore, &detailsRaw, &profile.Status,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewProfileNotFoundError(candidateID.String(), jobPostingID.String())
		}
		return nil, errors.NewQueryExecutionFailedError("match_profile", err)
	}

	if profile.ID, err = uuid.Parse(idStr); err != nil {
		return nil, errors.NewQueryExecutionFailedError("match_profile", err)
	}
	if profile.CandidateID, err = uuid.Parse(candStr); err != nil {
		return nil, errors.NewQueryExecutionFailedError("match_profile", err)
	}
	if profile.JobPostingID, err = uuid.Parse(jobStr); err != nil {
		return nil, errors.NewQueryExecutionFailedError("match_profile", err)
	}

	if len(detailsRaw) > 0 {
		var result models.MatchResult
		if err := json.Unmarshal(detailsRaw, &result); err == nil {
			profile.MatchDetails = &result
		}
	}

	s.cacheProfile(ctx, cacheKey, &profile)
	return &profile, nil
}

func (s *ProfileStore) cacheProfile(ctx context.Context, key string, profile *models.MatchProfile) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("Cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *ProfileStore) invalidate(ctx context.Context, candidateID, jobPostingID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, profileCacheKey(candidateID, jobPostingID)).Err(); err != nil {
		s.logger.Debug("Cache invalidation failed", map[string]interface{}{
			"candidateId": candidateID.String(),
			"error":       err.Error(),
		})
	}
}

func profileCacheKey(candidateID, jobPostingID uuid.UUID) string {
	return "profile:" + candidateID.String() + ":" + jobPostingID.String()
}
