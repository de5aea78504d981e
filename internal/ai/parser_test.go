package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScoreResponse(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		resp, err := parseScoreResponse(`{
			"scores": {"Impact": 15, "Feasibility": 8},
			"notes": "Solid proposal overall.",
			"recommendation": "pre_selected"
		}`)
		require.NoError(t, err)
		assert.Equal(t, 15.0, resp.Scores["Impact"])
		assert.Equal(t, 8.0, resp.Scores["Feasibility"])
		assert.Equal(t, "Solid proposal overall.", resp.Notes)
		assert.Equal(t, "pre_selected", resp.Recommendation)
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		resp, err := parseScoreResponse("```json\n{\"scores\": {\"Impact\": 12}, \"notes\": \"ok\", \"recommendation\": \"rejected\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, 12.0, resp.Scores["Impact"])
	})

	t.Run("not JSON", func(t *testing.T) {
		_, err := parseScoreResponse("I think this project deserves 80 points")
		assert.Error(t, err)
	})

	t.Run("no scores", func(t *testing.T) {
		_, err := parseScoreResponse(`{"notes": "nothing", "recommendation": "rejected"}`)
		assert.Error(t, err)
	})
}

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unwrapped", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}
