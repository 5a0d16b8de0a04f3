// Package bending wraps the bundled pseudo-bending binary, an alternative
// travel-time oracle to the grid search.
//
// The binary reads sta_location.txt and sou_location.txt from its working
// directory and writes RESULTS.txt whose first line is the travel time in
// seconds. The station file carries "lon lat dep" with the depth negated
// and scaled to metres; the source file carries the depth in km unchanged.
package bending

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dinextw/traveltime/normgrid"
)

// Sentinel errors for the oracle wrapper.
var (
	// ErrOracleFailed indicates the binary exited non-zero.
	ErrOracleFailed = errors.New("bending: pseudo-bending binary failed")

	// ErrBadResult indicates RESULTS.txt was missing or unparsable.
	ErrBadResult = errors.New("bending: unreadable oracle result")
)

// BinaryName is the oracle executable expected inside the work directory.
const BinaryName = "pseudo_bending"

// Bending runs the oracle out of a fixed work directory.
type Bending struct {
	workDir string
	grid    *normgrid.Grid
}

// New returns a Bending rooted at workDir, which must contain the
// pseudo_bending binary and its model inputs.
func New(workDir string, grid *normgrid.Grid) *Bending {
	return &Bending{workDir: workDir, grid: grid}
}

// Time computes the travel time between the snapped station and source by
// running the oracle once.
func (b *Bending) Time(ctx context.Context, staLoc, souLoc normgrid.Location) (float64, error) {
	sta, err := b.grid.Snap(staLoc, normgrid.StageFine)
	if err != nil {
		return 0, err
	}
	sou, err := b.grid.Snap(souLoc, normgrid.StageFine)
	if err != nil {
		return 0, err
	}

	// Station depth is negated and written in metres; source depth stays km.
	staDepM := -sta.Dep * 1000
	if staDepM == 0 {
		staDepM = 0 // never emit "-0"
	}
	staLine := fmt.Sprintf("%v %v %v", sta.Lon, sta.Lat, staDepM)
	if err := os.WriteFile(filepath.Join(b.workDir, "sta_location.txt"), []byte(staLine), 0o644); err != nil {
		return 0, fmt.Errorf("bending: writing station location: %w", err)
	}
	souLine := fmt.Sprintf("%v %v %v", sou.Lon, sou.Lat, sou.Dep)
	if err := os.WriteFile(filepath.Join(b.workDir, "sou_location.txt"), []byte(souLine), 0o644); err != nil {
		return 0, fmt.Errorf("bending: writing source location: %w", err)
	}

	cmd := exec.CommandContext(ctx, "./"+BinaryName)
	cmd.Dir = b.workDir
	slog.Debug("running pseudo-bending oracle", "dir", b.workDir)
	if out, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("%w: %v: %s", ErrOracleFailed, err, out)
	}

	return readResult(filepath.Join(b.workDir, "RESULTS.txt"))
}

// readResult parses the travel time off the first line of RESULTS.txt.
func readResult(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadResult, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return 0, fmt.Errorf("%w: empty result file", ErrBadResult)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: first line %q", ErrBadResult, sc.Text())
	}

	return v, nil
}
