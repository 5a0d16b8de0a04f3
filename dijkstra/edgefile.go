package dijkstra

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteEdgeFile emits the engine's file contract: a "<num_vertices>, <sink>"
// header, then one "<u>, <v>, <weight>" line per undirected edge. Weights
// are formatted to round-trip exactly through ReadEdgeFile.
func WriteEdgeFile(w io.Writer, numVertices, sink int, edges []Edge) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d, %d\n", numVertices, sink); err != nil {
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "%d, %d, %s\n",
			e.U, e.V, strconv.FormatFloat(e.W, 'g', -1, 64)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadEdgeFile parses the edge-file contract back into its parts.
func ReadEdgeFile(r io.Reader) (numVertices, sink int, edges []Edge, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	if !sc.Scan() {
		return 0, 0, nil, fmt.Errorf("%w: missing header", ErrMalformedEdgeFile)
	}
	header := splitFields(sc.Text())
	if len(header) != 2 {
		return 0, 0, nil, fmt.Errorf("%w: header %q", ErrMalformedEdgeFile, sc.Text())
	}
	if numVertices, err = strconv.Atoi(header[0]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: vertex count %q", ErrMalformedEdgeFile, header[0])
	}
	if sink, err = strconv.Atoi(header[1]); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: sink %q", ErrMalformedEdgeFile, header[1])
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := splitFields(line)
		if len(fields) != 3 {
			return 0, 0, nil, fmt.Errorf("%w: edge line %q", ErrMalformedEdgeFile, line)
		}
		var e Edge
		if e.U, err = strconv.Atoi(fields[0]); err != nil {
			return 0, 0, nil, fmt.Errorf("%w: edge line %q", ErrMalformedEdgeFile, line)
		}
		if e.V, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, nil, fmt.Errorf("%w: edge line %q", ErrMalformedEdgeFile, line)
		}
		if e.W, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return 0, 0, nil, fmt.Errorf("%w: edge line %q", ErrMalformedEdgeFile, line)
		}
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %v", ErrMalformedEdgeFile, err)
	}

	return numVertices, sink, edges, nil
}

// splitFields splits a comma-separated line, trimming the surrounding
// whitespace the "<a>, <b>" layout carries.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
