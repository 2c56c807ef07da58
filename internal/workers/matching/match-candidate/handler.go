// internal/workers/matching/match-candidate/handler.go
package matchcandidate

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
	"recruit-match/internal/common/metrics"
	"recruit-match/internal/match"
	"recruit-match/internal/store"
)

const (
	TaskType = "match-candidate"
)

// Handler scores one (candidate, job) pair and optionally persists the
// resulting match profile.
type Handler struct {
	config     *Config
	snapshots  *store.SnapshotStore
	profiles   *store.ProfileStore
	aggregator *match.Aggregator
	logger     logger.Logger
}

func NewHandler(config *Config, snapshots *store.SnapshotStore, profiles *store.ProfileStore, aggregator *match.Aggregator, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		snapshots:  snapshots,
		profiles:   profiles,
		aggregator: aggregator,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "MATCH_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	candidateID, err := uuid.Parse(input.CandidateID)
	if err != nil {
		return nil, errors.NewCandidateNotFoundError(input.CandidateID)
	}
	jobPostingID, err := uuid.Parse(input.JobPostingID)
	if err != nil {
		return nil, errors.NewJobPostingNotFoundError(input.JobPostingID)
	}

	candidate, err := h.snapshots.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	jobPosting, err := h.snapshots.GetJobPosting(ctx, jobPostingID)
	if err != nil {
		return nil, err
	}

	result := h.aggregator.Score(candidate, jobPosting)
	metrics.PairsScored.WithLabelValues(TaskType).Inc()

	output := &Output{
		MatchScore: result.OverallScore,
		Result:     result,
	}

	if input.Persist {
		profile := store.BuildProfile(result, candidate, jobPosting)
		saved, err := h.profiles.SaveProfile(ctx, profile)
		if err != nil {
			return nil, err
		}
		output.ProfileID = saved.ID.String()
		output.ProfileName = saved.ProfileName
	}

	h.logger.Info("pair scored", map[string]interface{}{
		"candidateId":  input.CandidateID,
		"jobPostingId": input.JobPostingID,
		"matchScore":   result.OverallScore,
		"persisted":    input.Persist,
	})
	return output, nil
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
