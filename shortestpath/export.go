package shortestpath

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ExportPath writes the fine-stage ray path as CSV: a fixed-width header
// line, then one "lon, lat, dep" row per path point with 12 decimal places.
func (d *Driver) ExportPath(w io.Writer) error {
	if d.state != StateDone {
		return ErrNotRun
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%18s, %18s, %18s\n", "LON", "LAT", "DEP"); err != nil {
		return err
	}
	for _, p := range d.finePath {
		if _, err := fmt.Fprintf(bw, "%.12f, %.12f, %.12f\n", p.Lon, p.Lat, p.Dep); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ExportPathFile writes the fine-stage ray path to a new file at path.
func (d *Driver) ExportPathFile(path string) error {
	if d.state != StateDone {
		return ErrNotRun
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("shortestpath: creating path export: %w", err)
	}
	werr := d.ExportPath(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}

	return werr
}
