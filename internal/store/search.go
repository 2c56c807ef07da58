package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"recruit-match/internal/common/errors"
	"recruit-match/internal/common/logger"
	"recruit-match/internal/common/validation"
	"recruit-match/internal/models"
)

// CandidateQuery narrows the candidate pool before ranking. All fields
// are optional; an empty query matches every active candidate.
type CandidateQuery struct {
	Keywords string
	Skills   []string
	Country  string
	Size     int
}

// CandidateSearch queries the candidate index to assemble ranking pools
// larger than a single snapshot table scan can serve. Documents carry
// the same payload shape as the snapshot store.
type CandidateSearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewCandidateSearch(client *elasticsearch.Client, index string, log logger.Logger) *CandidateSearch {
	return &CandidateSearch{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-search"}),
	}
}

// SearchCandidates runs the query and decodes the hits into candidate
// snapshots. Hits that fail snapshot validation are skipped.
func (s *CandidateSearch) SearchCandidates(ctx context.Context, query CandidateQuery) ([]*models.Candidate, error) {
	size := query.Size
	if size <= 0 {
		size = 100
	}

	body, err := json.Marshal(buildCandidateQuery(query))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError()
		}
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search returned %s", res.Status()))
	}

	var response struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	candidates := make([]*models.Candidate, 0, len(response.Hits.Hits))
	for _, hit := range response.Hits.Hits {
		if err := validation.ValidateCandidateSnapshot(hit.Source); err != nil {
			s.logger.Warn("Skipping search hit", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		var candidate models.Candidate
		if err := json.Unmarshal(hit.Source, &candidate); err != nil {
			s.logger.Warn("Skipping search hit", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		candidates = append(candidates, &candidate)
	}

	s.logger.Debug("Candidate search completed", map[string]interface{}{
		"totalHits": response.Hits.Total.Value,
		"returned":  len(candidates),
	})
	return candidates, nil
}

func buildCandidateQuery(query CandidateQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{
		map[string]interface{}{
			"term": map[string]interface{}{"status": "active"},
		},
	}

	if query.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query.Keywords,
				"fields": []string{"fullName^2", "skills^3", "experience.title"},
				"type":   "best_fields",
			},
		})
	}

	for _, skill := range query.Skills {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"skills": skill},
		})
	}

	if query.Country != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"location.country": query.Country},
		})
	}

	boolQuery := map[string]interface{}{
		"filter": filterClauses,
	}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}
