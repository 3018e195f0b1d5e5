package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertram-labs/blog-agent/internal/seo"
	"github.com/bertram-labs/blog-agent/internal/topics"
)

func ideaQueue(titles ...string) []topics.Idea {
	ideas := make([]topics.Idea, len(titles))
	for i, title := range titles {
		ideas[i] = topics.Idea{Title: title, Angle: "angle", ContentType: "how-to guide"}
	}
	return ideas
}

func TestAutopilot_ReusesStyleGuideAcrossBatch(t *testing.T) {
	// First run pays for style analysis (7 calls); the second reuses the
	// guide and runs 6 stages.
	script := fullRunScript()
	script = append(script, fullRunScript()[1:]...)
	o, client := newOrchestrator(t, script...)

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL: "https://blog.sliceproducts.com",
		Ideas:   ideaQueue("First Topic Title", "Second Topic Title"),
	})

	require.Len(t, outcomes, 2)
	assert.Empty(t, outcomes[0].Err)
	assert.Empty(t, outcomes[1].Err)
	assert.Equal(t, "STYLE_OK", outcomes[1].Result.StyleGuide)
	assert.True(t, outcomes[1].Result.StyleGuideCached)
	assert.Len(t, client.recordedPrompts(), 13)
}

func TestAutopilot_MaxPostsCapsQueue(t *testing.T) {
	o, _ := newOrchestrator(t, fullRunScript()...)

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL:  "https://blog.sliceproducts.com",
		Ideas:    ideaQueue("One", "Two", "Three"),
		MaxPosts: 1,
	})

	require.Len(t, outcomes, 1)
	assert.Equal(t, "One", outcomes[0].Idea.Title)
}

func TestAutopilot_StopRequestHonoredAtBoundary(t *testing.T) {
	o, _ := newOrchestrator(t, fullRunScript()...)

	calls := 0
	stop := func() bool {
		calls++
		return calls > 1 // allow the first post, stop before the second
	}

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL: "https://blog.sliceproducts.com",
		Ideas:   ideaQueue("First Topic Title", "Second Topic Title"),
		Stop:    stop,
	})

	require.Len(t, outcomes, 1)
	assert.Empty(t, outcomes[0].Err)
}

func TestAutopilot_SkipsHighRiskTopics(t *testing.T) {
	script := []stubCall{
		{text: "HIGH_RISK - duplicate"}, // duplication check for first idea
		{text: "CLEAR"},                 // duplication check for second idea
	}
	script = append(script, fullRunScript()...)
	o, _ := newOrchestrator(t, script...)

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL:          "https://blog.sliceproducts.com",
		Ideas:            ideaQueue("Duplicate Topic", "Fresh Topic"),
		CheckDuplication: true,
		ExistingTitles:   []string{"Duplicate Topic"},
	})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Skipped)
	assert.Equal(t, seo.VerdictHighRisk, outcomes[0].Verdict)
	assert.Nil(t, outcomes[0].Result)
	assert.False(t, outcomes[1].Skipped)
	assert.Empty(t, outcomes[1].Err)
}

func TestAutopilot_StopsAfterConsecutiveFailures(t *testing.T) {
	// Every run fails at the style stage.
	script := []stubCall{
		{err: errors.New("fail 1")},
		{err: errors.New("fail 2")},
		{err: errors.New("fail 3")},
	}
	o, _ := newOrchestrator(t, script...)

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL: "https://blog.sliceproducts.com",
		Ideas:   ideaQueue("One", "Two", "Three", "Four", "Five"),
	})

	require.Len(t, outcomes, 3)
	for _, out := range outcomes {
		assert.NotEmpty(t, out.Err)
	}
}

func TestAutopilot_FailureDoesNotSeedStyleCache(t *testing.T) {
	script := []stubCall{
		{err: errors.New("style down")}, // first run fails
	}
	script = append(script, fullRunScript()...) // second run pays full price
	o, client := newOrchestrator(t, script...)

	outcomes := o.Autopilot(context.Background(), AutopilotOptions{
		BlogURL: "https://blog.sliceproducts.com",
		Ideas:   ideaQueue("First Topic Title", "Second Topic Title"),
	})

	require.Len(t, outcomes, 2)
	assert.NotEmpty(t, outcomes[0].Err)
	assert.Empty(t, outcomes[1].Err)
	assert.False(t, outcomes[1].Result.StyleGuideCached)
	assert.Len(t, client.recordedPrompts(), 8)
}
