// internal/workers/matching/rank-pool/handler_test.go
package rankpool

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/match"
	"recruit-match/internal/store"
)

// ==========================
// Test Helper Functions
// ==========================

const testJobID = "22222222-2222-2222-2222-222222222222"
const testCandidateID = "11111111-1111-1111-1111-111111111111"

const jobPayload = `{
	"id": "22222222-2222-2222-2222-222222222222",
	"title": "Platform Engineer",
	"client": "Globex",
	"requirements": {"mustHaves": [{"name": "Go", "weight": 1.0}]},
	"location": {"country": "UK", "policy": "remote"},
	"status": "open"
}`

func candidatePayloadN(seq int, skills string) string {
	return fmt.Sprintf(`{
		"id": "00000000-0000-0000-0000-%012d",
		"fullName": "Candidate %d",
		"skills": [%s],
		"location": {"country": "UK", "remotePreference": "remote"},
		"rightToWork": ["UK"],
		"status": "active"
	}`, seq, seq, skills)
}

// No matching skill, no work authorization and a weak location fit.
const weakCandidatePayload = `{
	"id": "00000000-0000-0000-0000-000000000002",
	"fullName": "Candidate 2",
	"skills": ["Ruby"],
	"location": {"country": "ES", "remotePreference": "onsite"},
	"status": "active"
}`

func createTestHandler(t *testing.T, db *sql.DB) *Handler {
	testLog := logger.NewTestLogger(t)
	aggregator, err := match.NewAggregator(match.DefaultWeights(), testLog)
	require.NoError(t, err)

	ranker := match.NewRanker(aggregator, testLog, 2, 0.0, 100)
	snapshots := store.NewSnapshotStore(db, nil, 0, testLog)
	return NewHandler(LoadConfig(), snapshots, nil, ranker, testLog)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_RanksCandidatesForJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(jobPayload)))

	pool := sqlmock.NewRows([]string{"payload"}).
		AddRow([]byte(candidatePayloadN(1, `"Go"`))).
		AddRow([]byte(weakCandidatePayload)).
		AddRow([]byte(candidatePayloadN(3, `"Go", "PostgreSQL"`)))
	mock.ExpectQuery("SELECT payload FROM candidate_snapshots WHERE status").
		WithArgs(50).
		WillReturnRows(pool)

	handler := createTestHandler(t, db)
	output, err := handler.Execute(context.Background(), &Input{
		Direction: DirectionCandidatesForJob,
		AnchorID:  testJobID,
		MinScore:  0.5,
		Limit:     5,
	})

	require.NoError(t, err)
	assert.Equal(t, DirectionCandidatesForJob, output.Direction)
	assert.Equal(t, 3, output.PoolSize)

	// The Ruby-only candidate misses the must-have and falls below 0.5.
	require.Equal(t, 2, output.Count)
	for i, result := range output.Results {
		assert.Equal(t, testJobID, result.JobPostingID)
		assert.GreaterOrEqual(t, result.MatchScore, 0.5)
		if i > 0 {
			assert.LessOrEqual(t, result.MatchScore, output.Results[i-1].MatchScore)
		}
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RanksJobsForCandidate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM candidate_snapshots WHERE id").
		WithArgs(testCandidateID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).
			AddRow([]byte(candidatePayloadN(0, `"Go"`))))

	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots WHERE status").
		WithArgs(1000).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(jobPayload)))

	handler := createTestHandler(t, db)
	output, err := handler.Execute(context.Background(), &Input{
		Direction: DirectionJobsForCandidate,
		AnchorID:  testCandidateID,
	})

	require.NoError(t, err)
	require.Equal(t, 1, output.Count)
	assert.Equal(t, testJobID, output.Results[0].JobPostingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_UnknownDirection(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	handler := createTestHandler(t, db)

	output, err := handler.Execute(context.Background(), &Input{
		Direction: "sideways",
		AnchorID:  testJobID,
	})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestHandler_Execute_MalformedAnchor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	handler := createTestHandler(t, db)

	_, err = handler.Execute(context.Background(), &Input{
		Direction: DirectionCandidatesForJob,
		AnchorID:  "not-a-uuid",
	})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeJobPostingNotFound, stdErr.Code)
}

func TestHandler_Execute_AnchorNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT payload FROM job_posting_snapshots").
		WithArgs(testJobID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	handler := createTestHandler(t, db)
	_, err = handler.Execute(context.Background(), &Input{
		Direction: DirectionCandidatesForJob,
		AnchorID:  testJobID,
	})

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeJobPostingNotFound, stdErr.Code)
}
