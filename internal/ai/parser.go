package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khadim210/WolumaProject-sub000/internal/common"
)

// cleanMarkdownWrapper strips a ```json ... ``` fence that providers
// sometimes wrap around JSON payloads despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```json")
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}

// scorePayload is the JSON shape every provider must return.
type scorePayload struct {
	Scores         map[string]float64 `json:"scores"`
	Notes          string             `json:"notes"`
	Recommendation string             `json:"recommendation"`
}

// parseScoreResponse decodes a provider's scoring payload, tolerating a
// markdown fence around the JSON.
func parseScoreResponse(content string) (ScoreResponse, error) {
	content = cleanMarkdownWrapper(content)

	var payload scorePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return ScoreResponse{}, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	if len(payload.Scores) == 0 {
		return ScoreResponse{}, fmt.Errorf("%w: no scores present", common.ErrMalformedResponse)
	}

	return ScoreResponse{
		Scores:         payload.Scores,
		Notes:          payload.Notes,
		Recommendation: payload.Recommendation,
	}, nil
}
