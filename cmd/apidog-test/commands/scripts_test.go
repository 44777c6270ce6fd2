package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptCommands(t *testing.T) {
	cases := []struct {
		cmd     *cobra.Command
		name    string
		minArgs int
		maxArgs int
	}{
		{Convert(), "convert", 1, 1},
		{Compare(), "compare", 2, 4},
		{Merge(), "merge", 2, 2},
		{Reverse(), "reverse", 1, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotNil(t, tc.cmd)
			assert.Equal(t, tc.name, tc.cmd.Name())
			assert.NotNil(t, tc.cmd.RunE)
			assert.NotNil(t, tc.cmd.Flags().Lookup("node-bin"), "node-bin flag should exist")

			args := make([]string, tc.maxArgs)
			assert.NoError(t, tc.cmd.Args(tc.cmd, args))
			if tc.minArgs > 0 {
				assert.Error(t, tc.cmd.Args(tc.cmd, args[:tc.minArgs-1]))
			}
			assert.Error(t, tc.cmd.Args(tc.cmd, make([]string, tc.maxArgs+1)))
		})
	}
}

func TestVersion(t *testing.T) {
	cmd := Version()

	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Run)
}
