package prerequisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	// Try multiple common tools because different environments have
	// different tools available.
	possibleTools := []string{"go", "bash", "sh", "ls", "cat"}

	var foundTool string
	for _, tool := range possibleTools {
		results := Check([]Tool{{Name: tool, Required: false}})
		if len(results.Results) > 0 && results.Results[0].Found {
			foundTool = tool
			break
		}
	}
	require.NotEmpty(t, foundTool, "expected at least one common tool on PATH")

	results := Check([]Tool{{Name: foundTool, Required: true}})
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.NotEmpty(t, results.Results[0].Path)
}

func TestCheckMissingRequired(t *testing.T) {
	results := Check([]Tool{{
		Name:       "definitely-not-a-real-binary-4a7f",
		Required:   true,
		InstallURL: "https://example.com/install",
	}})

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-binary-4a7f")
	assert.Contains(t, err.Error(), "https://example.com/install")
}

func TestCheckMissingOptional(t *testing.T) {
	results := Check([]Tool{{Name: "definitely-not-a-real-binary-4a7f", Required: false}})

	assert.Len(t, results.Missing, 1)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}
