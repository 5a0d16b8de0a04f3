package dijkstra

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// External runs a standalone Dijkstra engine binary over the edge-file
// contract. The binary takes the edge-file path as its single argument,
// runs from its own directory, and prints the JSON result document on
// stdout.
type External struct {
	// BinPath is the engine executable.
	BinPath string

	// EdgeFilePath is where the edge file is written before each run.
	EdgeFilePath string
}

// Solve writes the edge file, invokes the engine, and decodes its output.
func (x *External) Solve(edges []Edge, numVertices, source, sink int) (*Result, error) {
	_ = source // the engine always starts from slot 0 by contract

	f, err := os.Create(x.EdgeFilePath)
	if err != nil {
		return nil, fmt.Errorf("dijkstra: creating edge file: %w", err)
	}
	werr := WriteEdgeFile(f, numVertices, sink, edges)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("dijkstra: writing edge file: %w", werr)
	}

	abs, err := filepath.Abs(x.EdgeFilePath)
	if err != nil {
		return nil, fmt.Errorf("dijkstra: resolving edge file: %w", err)
	}
	cmd := exec.Command(x.BinPath, abs)
	cmd.Dir = filepath.Dir(x.BinPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("running external dijkstra", "bin", x.BinPath, "edges", len(edges), "vertices", numVertices)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrExternalFailure, err, stderr.String())
	}

	return decodeResult(stdout.Bytes())
}

// engineResult mirrors the engine's JSON document. Engines have been seen
// spelling every number as a string, so the fields decode both forms.
type engineResult struct {
	ShortestWeight            flexFloat   `json:"shortest_weight"`
	ShortestPath              []flexInt   `json:"shortest_path"`
	TotalShortestVertexWeight []flexFloat `json:"total_shortest_vertex_weight"`
}

// decodeResult parses the engine's stdout into a Result.
func decodeResult(out []byte) (*Result, error) {
	var raw engineResult
	if err := json.Unmarshal(bytes.TrimSpace(out), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	res := &Result{
		ShortestWeight: float64(raw.ShortestWeight),
		ShortestPath:   make([]int, len(raw.ShortestPath)),
		VertexWeights:  make([]float64, len(raw.TotalShortestVertexWeight)),
	}
	for i, v := range raw.ShortestPath {
		res.ShortestPath[i] = int(v)
	}
	for i, v := range raw.TotalShortestVertexWeight {
		res.VertexWeights[i] = float64(v)
	}

	return res, nil
}

// flexFloat decodes a JSON number or a number spelled as a string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) > 0 && s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(b, &quoted); err != nil {
			return err
		}
		s = quoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: number %q", ErrMalformedResult, s)
	}
	*f = flexFloat(v)

	return nil
}

// flexInt decodes a JSON integer or an integer spelled as a string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) > 0 && s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(b, &quoted); err != nil {
			return err
		}
		s = quoted
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: integer %q", ErrMalformedResult, s)
	}
	*f = flexInt(v)

	return nil
}
