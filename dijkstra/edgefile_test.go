package dijkstra_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinextw/traveltime/dijkstra"
)

func TestEdgeFile_RoundTrip(t *testing.T) {
	edges := []dijkstra.Edge{
		{U: 0, V: 1, W: 1.8102400491392043},
		{U: 1, V: 2, W: 0.25},
		{U: 0, V: 2, W: 123456.789},
	}

	var buf bytes.Buffer
	require.NoError(t, dijkstra.WriteEdgeFile(&buf, 3, 2, edges))

	n, sink, back, err := dijkstra.ReadEdgeFile(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, sink)
	assert.Equal(t, edges, back, "weights must round-trip exactly")
}

func TestEdgeFile_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dijkstra.WriteEdgeFile(&buf, 8, 7, []dijkstra.Edge{{U: 0, V: 7, W: 1.5}}))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3, "header, one edge, trailing newline")
	assert.Equal(t, "8, 7", lines[0])
	assert.Equal(t, "0, 7, 1.5", lines[1])
	assert.Empty(t, lines[2])
}

func TestReadEdgeFile_Malformed(t *testing.T) {
	cases := []string{
		"",
		"3\n",
		"3, 1\n0, 1\n",
		"3, 1\nx, 1, 2.0\n",
		"3, 1\n0, 1, abc\n",
	}
	for _, text := range cases {
		_, _, _, err := dijkstra.ReadEdgeFile(strings.NewReader(text))
		assert.ErrorIs(t, err, dijkstra.ErrMalformedEdgeFile, "input %q", text)
	}
}

// fakeEngine writes a shell script that ignores its input and prints a
// canned JSON document, enough to exercise the process plumbing and the
// string-or-number decoding.
func fakeEngine(t *testing.T, doc string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "dijk2")
	script := "#!/bin/sh\ncat <<'EOF'\n" + doc + "\nEOF\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}

func TestExternal_SolveParsesStringNumbers(t *testing.T) {
	doc := `{"shortest_weight": "1.81024",
		"shortest_path": ["1", "0"],
		"total_shortest_vertex_weight": ["0", "1.81024"]}`
	x := &dijkstra.External{
		BinPath:      fakeEngine(t, doc),
		EdgeFilePath: filepath.Join(t.TempDir(), "edges.txt"),
	}

	res, err := x.Solve([]dijkstra.Edge{{U: 0, V: 1, W: 1.81024}}, 2, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.81024, res.ShortestWeight)
	assert.Equal(t, []int{1, 0}, res.ShortestPath)
	assert.Equal(t, []float64{0, 1.81024}, res.VertexWeights)

	// The edge file was written for the engine to consume.
	data, err := os.ReadFile(x.EdgeFilePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2, 1\n"))
}

func TestExternal_SolveParsesPlainNumbers(t *testing.T) {
	doc := `{"shortest_weight": 2.5, "shortest_path": [2, 1, 0],
		"total_shortest_vertex_weight": [0, 1.5, 2.5]}`
	x := &dijkstra.External{
		BinPath:      fakeEngine(t, doc),
		EdgeFilePath: filepath.Join(t.TempDir(), "edges.txt"),
	}

	res, err := x.Solve(nil, 3, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.5, res.ShortestWeight)
	assert.Equal(t, []int{2, 1, 0}, res.ShortestPath)
}

func TestExternal_SolveBadOutput(t *testing.T) {
	x := &dijkstra.External{
		BinPath:      fakeEngine(t, "not json"),
		EdgeFilePath: filepath.Join(t.TempDir(), "edges.txt"),
	}

	_, err := x.Solve(nil, 1, 0, 0)
	assert.ErrorIs(t, err, dijkstra.ErrMalformedResult)
}
