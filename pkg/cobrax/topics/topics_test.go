package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopicsFS() fstest.MapFS {
	return fstest.MapFS{
		"help/escapes.md":        {Data: []byte("# Escapes\n\nSubstring matching.")},
		"help/option-strict.txt": {Data: []byte("Exit 1 when a file failed.")},
		"help/nested/marker.md":  {Data: []byte("# Skip marker")},
		"help/ignore.json":       {Data: []byte("{}")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	tm := New(testTopicsFS(), "help", Options{})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"escapes", "marker", "option-strict"}, tm.ListTopics())

	topic, ok := tm.GetTopic("escapes")
	require.True(t, ok)
	assert.Equal(t, "# Escapes\n\nSubstring matching.", topic.Content)

	_, ok = tm.GetTopic("ignore")
	assert.False(t, ok)
}

func TestTopicManager_FlagStyleLookup(t *testing.T) {
	tm := New(testTopicsFS(), "help", Options{})
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"--strict", "-strict", "strict", "option-strict"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-strict", topic.Name)
	}
}

func TestTopicManager_MissingDir(t *testing.T) {
	tm := New(testTopicsFS(), "nope", Options{})
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func TestTopicManager_CustomExtensions(t *testing.T) {
	tm := New(testTopicsFS(), "help", Options{Extensions: []string{".json"}})
	require.NoError(t, tm.scanTopics())
	assert.Equal(t, []string{"ignore"}, tm.ListTopics())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "cyrelease", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "package", Short: "Build the distribution", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, Initialize(root, testTopicsFS(), "help", Options{}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInitialize_HelpTopic(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "escapes"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "# Escapes\n\nSubstring matching.", out.String())
}

func TestInitialize_HelpTopicsList(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	text := out.String()
	assert.Contains(t, text, "General topics:\n  escapes\n  marker")
	assert.Contains(t, text, "Option topics:\n  --strict")
	assert.True(t, strings.HasSuffix(text, "Use 'cyrelease help <topic>' to read about a specific topic.\n"))
}

func TestInitialize_HelpCommandFallback(t *testing.T) {
	root, out := newRoot(t)
	root.SetArgs([]string{"help", "package"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build the distribution")
}

func TestGlamourRenderer_NonMarkdownUnchanged(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}
