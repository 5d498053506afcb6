package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// MockClient implements llm.Client for testing
type MockClient struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)
}

func (m *MockClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *MockClient) Close() error { return nil }

func testAnalysis() *types.JobDescriptionAnalysis {
	jd := &types.JobDescriptionAnalysis{
		JobTitle:                "Data Engineer",
		CompanyName:             "Initech",
		RequiredTechnicalSkills: []string{"Go", "SQL"},
	}
	jd.EnsureDefaults()
	return jd
}

func TestScorer_Score_Success(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			assert.Contains(t, req.Prompt, "Built the ingestion pipeline")
			assert.Contains(t, req.Prompt, "Data Engineer")
			assert.Equal(t, float32(0.1), req.Temperature)
			return "```json\n{\"relevanceScore\": 0.85, \"matchingKeywords\": [\"pipeline\"], \"justification\": \"Strong match\"}\n```", nil
		},
	}

	result, err := New(client, nil).Score(context.Background(), "Built the ingestion pipeline", testAnalysis())
	require.NoError(t, err)
	assert.InDelta(t, 0.85, result.RelevanceScore, 0.0001)
	assert.Equal(t, []string{"pipeline"}, result.MatchingKeywords)
	assert.Equal(t, "Strong match", result.Justification)
}

func TestScorer_Score_EmptyInput(t *testing.T) {
	scorer := New(&MockClient{}, nil)
	_, err := scorer.Score(context.Background(), "   ", testAnalysis())
	require.Error(t, err)

	var scoringErr *ScoringError
	require.ErrorAs(t, err, &scoringErr)
	assert.Contains(t, scoringErr.Reason, "empty")
}

func TestScorer_Score_UsesLiteModel(t *testing.T) {
	var gotModel string
	client := &MockClient{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			gotModel = req.Model
			return `{"relevanceScore": 0.5, "matchingKeywords": [], "justification": "ok"}`, nil
		},
	}

	_, err := New(client, llm.DefaultGeminiConfig()).Score(context.Background(), "text", testAnalysis())
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-lite", gotModel)
}

func TestParseScoreResponse_ShapeContract(t *testing.T) {
	tests := []struct {
		name     string
		response string
		reason   string
	}{
		{
			name:     "not JSON",
			response: "I would rate this highly relevant.",
			reason:   "not valid JSON",
		},
		{
			name:     "score missing",
			response: `{"matchingKeywords": [], "justification": "ok"}`,
			reason:   "relevanceScore missing",
		},
		{
			name:     "score above one",
			response: `{"relevanceScore": 8.5, "matchingKeywords": [], "justification": "ok"}`,
			reason:   "out of [0,1]",
		},
		{
			name:     "score negative",
			response: `{"relevanceScore": -0.1, "matchingKeywords": [], "justification": "ok"}`,
			reason:   "out of [0,1]",
		},
		{
			name:     "justification missing",
			response: `{"relevanceScore": 0.5, "matchingKeywords": []}`,
			reason:   "justification missing",
		},
		{
			name:     "keywords missing",
			response: `{"relevanceScore": 0.5, "justification": "ok"}`,
			reason:   "matchingKeywords missing",
		},
		{
			name:     "keywords not a sequence",
			response: `{"relevanceScore": 0.5, "matchingKeywords": "pipeline", "justification": "ok"}`,
			reason:   "not a sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScoreResponse(tt.response)
			require.Error(t, err)

			var scoringErr *ScoringError
			require.ErrorAs(t, err, &scoringErr)
			assert.Contains(t, scoringErr.Reason, tt.reason)
			assert.Equal(t, tt.response, scoringErr.RawOutput)
		})
	}
}

func TestParseScoreResponse_EmptyKeywordsAllowed(t *testing.T) {
	result, err := parseScoreResponse(`{"relevanceScore": 0, "matchingKeywords": [], "justification": "no overlap"}`)
	require.NoError(t, err)
	assert.Zero(t, result.RelevanceScore)
	assert.Equal(t, []string{}, result.MatchingKeywords)
}

func TestParseScoreResponse_BoundaryScores(t *testing.T) {
	for _, score := range []string{"0", "1", "0.9999"} {
		_, err := parseScoreResponse(`{"relevanceScore": ` + score + `, "matchingKeywords": [], "justification": "ok"}`)
		assert.NoError(t, err, score)
	}
}
