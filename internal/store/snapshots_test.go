package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

const candidatePayload = `{
	"id": "11111111-1111-1111-1111-111111111111",
	"fullName": "Dana Reyes",
	"skills": ["Go", "PostgreSQL"],
	"location": {"country": "UK", "remotePreference": "remote"},
	"rightToWork": ["UK"],
	"status": "active"
}`

const jobPayload = `{
	"id": "22222222-2222-2222-2222-222222222222",
	"title": "Platform Engineer",
	"client": "Globex",
	"requirements": {"mustHaves": [{"name": "Go", "weight": 1.0}]},
	"location": {"country": "UK", "policy": "remote"},
	"status": "open"
}`

var (
	candidateID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	jobID       = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func newSnapshotStore(t *testing.T) (*SnapshotStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSnapshotStore(db, nil, 0, logger.NewTestLogger(t)), mock
}

// ==========================
// GetCandidate Tests
// ==========================

func TestSnapshotStore_GetCandidate(t *testing.T) {
	store, mock := newSnapshotStore(t)

	mock.ExpectQuery("SELECT payload FROM candidate_snapshots").
		WithArgs(candidateID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(candidatePayload)))

	candidate, err := store.GetCandidate(context.Background(), candidateID)

	require.NoError(t, err)
	assert.Equal(t, candidateID, candidate.ID)
	assert.Equal(t, "Dana Reyes", candidate.FullName)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, candidate.Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotStore_GetCandidate_NotFound(t *testing.T) {
	store, mock := newSnapshotStore(t)

	mock.ExpectQuery("SELECT payload FROM candidate_snapshots").
		WithArgs(candidateID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	candidate, err := store.GetCandidate(context.Background(), candidateID)

	assert.Nil(t, candidate)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeCandidateNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestSnapshotStore_GetCandidate_InvalidPayload(t *testing.T) {
	store, mock := newSnapshotStore(t)

	mock.ExpectQuery("SELECT payload FROM candidate_snapshots").
		WithArgs(candidateID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`{"skills": []}`)))

	candidate, err := store.GetCandidate(context.Background(), candidateID)

	assert.Nil(t, candidate)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeSnapshotInvalid, stdErr.Code)
}

func TestSnapshotStore_GetCandidate_CacheHit(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("candidate:" + candidateID.String()).SetVal(candidatePayload)

	store := NewSnapshotStore(db, redisClient, 5*time.Minute, logger.NewTestLogger(t))
	candidate, err := store.GetCandidate(context.Background(), candidateID)

	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", candidate.FullName)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestSnapshotStore_GetCandidate_CacheMissFallsThrough(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	redisClient, redisMock := redismock.NewClientMock()
	cacheKey := "candidate:" + candidateID.String()
	redisMock.ExpectGet(cacheKey).RedisNil()
	redisMock.ExpectSet(cacheKey, []byte(candidatePayload), 5*time.Minute).SetVal("OK")

	dbMock.ExpectQuery("SELECT payload FROM candidate_snapshots").
		WithArgs(candidateID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(candidatePayload)))

	store := NewSnapshotStore(db, redisClient, 5*time.Minute, logger.NewTestLogger(t))
	candidate, err := store.GetCandidate(context.Background(), candidateID)

	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", candidate.FullName)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

// ==========================
// GetJobPosting Tests
// ==========================

func TestSnapshotStore_GetJobPosting(t *testing.T) {
	store, mock := newSnapshotStore(t)

	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots").
		WithArgs(jobID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(jobPayload)))

	job, err := store.GetJobPosting(context.Background(), jobID)

	require.NoError(t, err)
	assert.Equal(t, jobID, job.ID)
	assert.Equal(t, "Platform Engineer", job.Title)
	require.Len(t, job.Requirements.MustHaves, 1)
	assert.Equal(t, "Go", job.Requirements.MustHaves[0].Name)
}

func TestSnapshotStore_GetJobPosting_NotFound(t *testing.T) {
	store, mock := newSnapshotStore(t)

	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots").
		WithArgs(jobID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	job, err := store.GetJobPosting(context.Background(), jobID)

	assert.Nil(t, job)
	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeJobPostingNotFound, stdErr.Code)
}

// ==========================
// Pool Listing Tests
// ==========================

func TestSnapshotStore_ListActiveCandidates(t *testing.T) {
	store, mock := newSnapshotStore(t)

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow([]byte(candidatePayload)).
		AddRow([]byte(`{"not": "a candidate"}`)).
		AddRow([]byte(candidatePayload))

	mock.ExpectQuery("SELECT payload FROM candidate_snapshots WHERE status").
		WithArgs(30).
		WillReturnRows(rows)

	pool, err := store.ListActiveCandidates(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, pool, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotStore_ListActiveJobPostings(t *testing.T) {
	store, mock := newSnapshotStore(t)

	rows := sqlmock.NewRows([]string{"payload"}).AddRow([]byte(jobPayload))
	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots WHERE status").
		WithArgs(50).
		WillReturnRows(rows)

	pool, err := store.ListActiveJobPostings(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "Platform Engineer", pool[0].Title)
}
