package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertram-labs/blog-agent/internal/llm"
)

// fakeClient implements llm.Client with canned behavior.
type fakeClient struct {
	response  string
	err       error
	blockCtx  bool // block until the call context is done
	sawSearch bool
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if f.blockCtx {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeClient) GenerateWithSearch(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.sawSearch = true
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                       { return nil }

func TestRunner_Run(t *testing.T) {
	client := &fakeClient{response: "STYLE_OK"}
	runner := NewRunner(client)
	defer runner.Close()

	got, err := runner.Run(context.Background(), StyleAnalyzer, "analyze this")
	require.NoError(t, err)
	assert.Equal(t, "STYLE_OK", got)
	assert.True(t, client.sawSearch)
}

func TestRunner_Run_NoSearchDescriptor(t *testing.T) {
	client := &fakeClient{response: "scored"}
	runner := NewRunner(client)
	defer runner.Close()

	_, err := runner.Run(context.Background(), SEOScorer, "score this")
	require.NoError(t, err)
	assert.False(t, client.sawSearch)
}

func TestRunner_Run_TagsErrorWithAgentName(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	runner := NewRunner(client)
	defer runner.Close()

	_, err := runner.Run(context.Background(), Researcher, "research")
	require.Error(t, err)

	var agentErr *Error
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, "Research Specialist", agentErr.Agent)
	assert.Contains(t, err.Error(), "Research Specialist")
	assert.Equal(t, "boom", Text(err))
}

func TestRunner_Run_Timeout(t *testing.T) {
	client := &fakeClient{blockCtx: true}
	runner := NewRunner(client)
	defer runner.Close()

	d := Descriptor{Name: "Slow Agent", Tier: llm.TierLite, Timeout: 20 * time.Millisecond}
	_, err := runner.Run(context.Background(), d, "never finishes")
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "Slow Agent", timeoutErr.Agent)
	assert.Contains(t, err.Error(), "timed out")
}

func TestRunner_Run_CallerCancellation(t *testing.T) {
	client := &fakeClient{blockCtx: true}
	runner := NewRunner(client)
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, Researcher, "prompt")
	require.Error(t, err)
	var agentErr *Error
	assert.ErrorAs(t, err, &agentErr)
}

func TestRunner_ConcurrentCalls(t *testing.T) {
	client := &fakeClient{response: "ok"}
	runner := NewRunner(client)
	defer runner.Close()

	results := make(chan error, PoolSize)
	for i := 0; i < PoolSize; i++ {
		go func() {
			_, err := runner.Run(context.Background(), Researcher, "prompt")
			results <- err
		}()
	}
	for i := 0; i < PoolSize; i++ {
		assert.NoError(t, <-results)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "boom", Text(&Error{Agent: "A", Cause: errors.New("boom")}))
	assert.Equal(t, "plain", Text(errors.New("plain")))

	timeout := &TimeoutError{Agent: "A", Timeout: time.Second}
	assert.Equal(t, timeout.Error(), Text(timeout))
}
