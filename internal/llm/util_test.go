package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare json", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "generic fence", input: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fence with language id", input: "```javascript\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "fence starting with brace", input: "```{\"a\": 1}```", want: `{"a": 1}`},
		{name: "surrounding whitespace", input: "  \n{\"a\": 1}\n  ", want: `{"a": 1}`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_MultilinePayload(t *testing.T) {
	input := "```json\n{\n  \"tone\": \"practical\",\n  \"list_style\": \"numbered\"\n}\n```"
	want := "{\n  \"tone\": \"practical\",\n  \"list_style\": \"numbered\"\n}"
	assert.Equal(t, want, CleanJSONBlock(input))
}
