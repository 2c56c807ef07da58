// internal/workers/matching/rank-pool/handler.go
package rankpool

import (
	"context"
	"encoding/json"
	stdliberrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/match"
	"recruit-match/internal/models"
	"recruit-match/internal/store"
)

const (
	TaskType = "rank-pool"
)

var ErrUnknownDirection = stdliberrors.New("UNKNOWN_DIRECTION")

// Handler ranks a pool of candidates against one job, or a pool of jobs
// against one candidate. The pool comes from the candidate index when
// search narrowing is requested, otherwise from the snapshot tables.
type Handler struct {
	config    *Config
	snapshots *store.SnapshotStore
	search    *store.CandidateSearch
	ranker    *match.Ranker
	logger    logger.Logger
}

func NewHandler(config *Config, snapshots *store.SnapshotStore, search *store.CandidateSearch, ranker *match.Ranker, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		snapshots: snapshots,
		search:    search,
		ranker:    ranker,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *errors.StandardError
		if stdliberrors.As(err, &stdErr) {
			bpmnErr := errors.ConvertToBPMNError(stdErr)
			h.failJob(client, job, bpmnErr.Code, bpmnErr.Message)
			return
		}
		if stdliberrors.Is(err, ErrUnknownDirection) {
			h.failJob(client, job, "UNKNOWN_DIRECTION", err.Error())
			return
		}
		h.failJob(client, job, "RANKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	opts := match.RankOptions{
		MinScore: input.MinScore,
		Limit:    input.Limit,
	}

	switch input.Direction {
	case DirectionCandidatesForJob:
		return h.rankCandidates(ctx, input, opts)
	case DirectionJobsForCandidate:
		return h.rankJobs(ctx, input, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, input.Direction)
	}
}

func (h *Handler) rankCandidates(ctx context.Context, input *Input, opts match.RankOptions) (*Output, error) {
	jobID, err := uuid.Parse(input.AnchorID)
	if err != nil {
		return nil, errors.NewJobPostingNotFoundError(input.AnchorID)
	}

	jobPosting, err := h.snapshots.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}

	pool, err := h.candidatePool(ctx, input)
	if err != nil {
		return nil, err
	}

	results, err := h.ranker.RankCandidatesForJob(ctx, jobPosting, pool, opts)
	if err != nil {
		return nil, err
	}

	return h.buildOutput(input, results, len(pool)), nil
}

func (h *Handler) rankJobs(ctx context.Context, input *Input, opts match.RankOptions) (*Output, error) {
	candidateID, err := uuid.Parse(input.AnchorID)
	if err != nil {
		return nil, errors.NewCandidateNotFoundError(input.AnchorID)
	}

	candidate, err := h.snapshots.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}
	pool, err := h.snapshots.ListActiveJobPostings(ctx, limit)
	if err != nil {
		return nil, err
	}

	results, err := h.ranker.RankJobsForCandidate(ctx, candidate, pool, opts)
	if err != nil {
		return nil, err
	}

	return h.buildOutput(input, results, len(pool)), nil
}

// candidatePool uses the search index when the input narrows the pool,
// the snapshot table otherwise.
func (h *Handler) candidatePool(ctx context.Context, input *Input) ([]*models.Candidate, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}

	if h.search != nil && (input.Keywords != "" || len(input.Skills) > 0 || input.Country != "") {
		return h.search.SearchCandidates(ctx, store.CandidateQuery{
			Keywords: input.Keywords,
			Skills:   input.Skills,
			Country:  input.Country,
			Size:     limit * 10,
		})
	}
	return h.snapshots.ListActiveCandidates(ctx, limit)
}

func (h *Handler) buildOutput(input *Input, results []*models.MatchResult, poolSize int) *Output {
	ranked := make([]RankedMatch, 0, len(results))
	for _, result := range results {
		ranked = append(ranked, RankedMatch{
			CandidateID:  result.CandidateID.String(),
			JobPostingID: result.JobPostingID.String(),
			MatchScore:   result.OverallScore,
		})
	}

	h.logger.Info("pool ranked", map[string]interface{}{
		"direction": input.Direction,
		"anchorId":  input.AnchorID,
		"poolSize":  poolSize,
		"returned":  len(ranked),
	})

	return &Output{
		Direction: input.Direction,
		AnchorID:  input.AnchorID,
		Results:   ranked,
		Count:     len(ranked),
		PoolSize:  poolSize,
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
