package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient implements Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func TestCreateMessage_MockClient(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	req := MessageRequest{
		Model:     "claude-haiku-4-5-20251001",
		MaxTokens: 400,
		Messages: []Message{
			{Role: "user", Content: "Hallo"},
		},
	}

	expected := &MessageResponse{
		ID:         "msg_123",
		Model:      "claude-haiku-4-5-20251001",
		Content:    []ContentBlock{{Type: "text", Text: `{"incentives": []}`}},
		StopReason: "end_turn",
		Usage: TokenUsage{
			InputTokens:  10,
			OutputTokens: 5,
		},
	}

	mc.On("CreateMessage", ctx, req).Return(expected, nil)

	resp, err := mc.CreateMessage(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, expected, resp)
	mc.AssertExpectations(t)
}

func TestResponseText(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "part one "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "part two"},
		},
	}
	assert.Equal(t, "part one part two", resp.Text())

	empty := &MessageResponse{}
	assert.Equal(t, "", empty.Text())
}

func TestTokenUsageAdd(t *testing.T) {
	var total TokenUsage
	total.Add(TokenUsage{InputTokens: 100, OutputTokens: 20})
	total.Add(TokenUsage{InputTokens: 50, OutputTokens: 10, CacheReadInputTokens: 80})

	assert.Equal(t, int64(150), total.InputTokens)
	assert.Equal(t, int64(30), total.OutputTokens)
	assert.Equal(t, int64(80), total.CacheReadInputTokens)
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name  string
		usage TokenUsage
		model string
		want  float64
	}{
		{
			name:  "known model input and output",
			usage: TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000},
			model: "claude-haiku-4-5-20251001",
			want:  4.80,
		},
		{
			name:  "cache write premium and read discount",
			usage: TokenUsage{CacheCreationInputTokens: 1_000_000, CacheReadInputTokens: 1_000_000},
			model: "claude-haiku-4-5-20251001",
			want:  0.80*1.25 + 0.80*0.1,
		},
		{
			name:  "unknown model",
			usage: TokenUsage{InputTokens: 1_000_000},
			model: "some-other-model",
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.usage.EstimateCost(tt.model), 1e-9)
		})
	}
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	blocks := BuildCachedSystemBlocks("system prompt")
	require.Len(t, blocks, 1)
	assert.Equal(t, "system prompt", blocks[0].Text)
	require.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "1h", blocks[0].CacheControl.TTL)
}
