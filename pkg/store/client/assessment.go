package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/posture-report/pkg/models/api"
)

const lastAssessmentResultsPath = "/AssessmentHistoryV2/LastAssessmentResults"

// LastAssessmentResults fetches the latest assessment runs matching the
// bundle filters. Only 200 OK is accepted.
func (c *Client) LastAssessmentResults(
	ctx context.Context,
	req api.LastAssessmentResultsRequest,
) ([]api.AssessmentResult, error) {
	resp, err := c.send(ctx, http.MethodPost, lastAssessmentResultsPath, req)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, c.httpError(http.MethodPost, lastAssessmentResultsPath, resp)
	}

	var results []api.AssessmentResult
	if err := json.Unmarshal(resp.body, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment results: %w", err)
	}
	return results, nil
}
