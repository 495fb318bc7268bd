package globals

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "root"}
	AddFlags(root)

	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	AddResourceFlags(child)
	root.AddCommand(child)
	return root, child
}

func TestParseFromSubcommand(t *testing.T) {
	root, child := newTree()
	root.SetArgs([]string{"child", "-o", "yaml", "-v", "--log-level", "trace", "--no-color"})
	require.NoError(t, root.Execute())

	flags, err := Parse(child)
	require.NoError(t, err)
	assert.Equal(t, &Flags{Output: "yaml", Verbose: true, NoColor: true, LogLevel: "trace"}, flags)
}

func TestFormatAlias(t *testing.T) {
	root, child := newTree()
	root.SetArgs([]string{"child", "--format", "json"})
	require.NoError(t, root.Execute())

	flags, err := Parse(child)
	require.NoError(t, err)
	assert.Equal(t, "json", flags.Output)
}

func TestParseResources(t *testing.T) {
	root, child := newTree()
	root.SetArgs([]string{"child", "--limit", "5", "-s", "orwell"})
	require.NoError(t, root.Execute())

	rf := ParseResources(child)
	assert.Equal(t, 5, rf.Limit)
	assert.Equal(t, "orwell", rf.Search)
}

func TestParseWithoutFlags(t *testing.T) {
	_, err := Parse(&cobra.Command{Use: "bare"})
	assert.Error(t, err)
}
