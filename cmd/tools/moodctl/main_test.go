package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/serene/backend/internal/analysis/sentiment"
	"github.com/zhouzirui/serene/backend/internal/analysis/timeline"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestClassifyCommand(t *testing.T) {
	var resp sentiment.Response
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "classify", "feeling", "SAD")), &resp))
	assert.Equal(t, sentiment.Sadness, resp.Sentiment)
}

func TestRulesCommandListsPriority(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(run(t, "", "rules")), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "stress")
	assert.Contains(t, lines[3], "(default)")
}

func TestTimelineCommandFromStdin(t *testing.T) {
	input := `[{"id":"1","userId":"u","mood":"great","timestamp":"2024-06-12T09:00:00Z"}]`
	var points []timeline.Point
	require.NoError(t, json.Unmarshal([]byte(run(t, input, "timeline", "--today", "2024-06-12", "--tz", "UTC")), &points))
	require.Len(t, points, 7)
	assert.Equal(t, "great", points[6].Mood)
	assert.True(t, points[0].Placeholder)
}

func TestTimelineCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

	var points []timeline.Point
	require.NoError(t, json.Unmarshal([]byte(run(t, "", "timeline", "-d", "2024-06-12", "-f", path, "--tz", "UTC")), &points))
	require.Len(t, points, 7)
	// 2024-06-12 is a Wednesday
	assert.Equal(t, 2.5, points[6].Value)
}

func TestTimelineCommandRejectsBadDate(t *testing.T) {
	cmd := newRootCmd(strings.NewReader("[]"), &bytes.Buffer{})
	cmd.SetArgs([]string{"timeline", "--today", "12/06/2024"})
	assert.Error(t, cmd.Execute())
}
