// Command traveltime computes the first-arrival travel time between one
// station and one source through a 3D velocity model.
//
// Usage:
//
//	traveltime -sta-lon 120 -sta-lat 23 -sta-dep 0 \
//	           -sou-lon 120.01 -sou-lat 23.01 -sou-dep 1 \
//	           [-config traveltime.yaml] [-export result.csv] [-store] [-oracle]
//
// The configuration path can also come from the TRAVELTIME_CONFIG
// environment variable; flags win. With -store the fine-stage vertex
// weights are imported into the configured travel-time database; with
// -oracle the pseudo-bending binary answers instead of the grid search.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dinextw/traveltime/bending"
	"github.com/dinextw/traveltime/config"
	"github.com/dinextw/traveltime/datastore"
	"github.com/dinextw/traveltime/dijkstra"
	"github.com/dinextw/traveltime/geomodel"
	"github.com/dinextw/traveltime/graphbuilder"
	"github.com/dinextw/traveltime/normgrid"
	"github.com/dinextw/traveltime/shortestpath"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		cfgPath    = flag.String("config", "", "configuration file (YAML)")
		staLon     = flag.Float64("sta-lon", 0, "station longitude, degrees")
		staLat     = flag.Float64("sta-lat", 0, "station latitude, degrees")
		staDep     = flag.Float64("sta-dep", 0, "station depth, km (negative above sea level)")
		souLon     = flag.Float64("sou-lon", 0, "source longitude, degrees")
		souLat     = flag.Float64("sou-lat", 0, "source latitude, degrees")
		souDep     = flag.Float64("sou-dep", 0, "source depth, km")
		exportPath = flag.String("export", "", "write the fine-stage ray path CSV here")
		store      = flag.Bool("store", false, "import vertex travel times into the database")
		oracle     = flag.Bool("oracle", false, "use the pseudo-bending oracle instead of the grid search")
	)
	flag.Parse()

	cfg := config.Default()
	path := *cfgPath
	if path == "" {
		path = os.Getenv("TRAVELTIME_CONFIG")
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	})))

	grid, err := normgrid.New(cfg.Grid.Refine)
	if err != nil {
		return err
	}

	sta := normgrid.Location{Lon: *staLon, Lat: *staLat, Dep: *staDep}
	sou := normgrid.Location{Lon: *souLon, Lat: *souLat, Dep: *souDep}

	if *oracle {
		slog.Info("running pseudo-bending oracle", "work_dir", cfg.Bending.WorkDir)
		tt, err := bending.New(cfg.Bending.WorkDir, grid).Time(ctx, sta, sou)
		if err != nil {
			return fmt.Errorf("running oracle: %w", err)
		}
		fmt.Println(tt)

		return nil
	}

	slog.Info("loading velocity model", "path", cfg.Model.Path)
	model, err := geomodel.Load(cfg.Model.Path)
	if err != nil {
		return err
	}

	builder, err := graphbuilder.New(grid, model,
		graphbuilder.WithExtraRange(cfg.Builder.ExtraRange[0], cfg.Builder.ExtraRange[1], cfg.Builder.ExtraRange[2]),
		graphbuilder.WithRanges(cfg.Builder.Ranges[0], cfg.Builder.Ranges[1], cfg.Builder.Ranges[2]))
	if err != nil {
		return err
	}

	opts := []shortestpath.Option{}
	if cfg.Solver.Mode == config.SolverExternal {
		opts = append(opts, shortestpath.WithSolver(&dijkstra.External{
			BinPath:      cfg.Solver.BinPath,
			EdgeFilePath: cfg.Solver.EdgeFilePath,
		}))
	}
	driver, err := shortestpath.New(grid, builder, opts...)
	if err != nil {
		return err
	}

	slog.Info("computing travel time", "station", sta, "source", sou)

	travelTime, err := driver.Run(sta, sou)
	if err != nil {
		return fmt.Errorf("computing travel time: %w", err)
	}
	slog.Info("travel time computed", "seconds", travelTime)
	fmt.Println(travelTime)

	if *exportPath != "" {
		if err := driver.ExportPathFile(*exportPath); err != nil {
			return fmt.Errorf("exporting ray path: %w", err)
		}
		slog.Info("ray path exported", "path", *exportPath)
	}

	if *store {
		if !cfg.Database.Enabled() {
			return fmt.Errorf("%w: -store requires database.host", config.ErrBadConfig)
		}
		if err := importTimes(ctx, cfg, grid, driver, sta); err != nil {
			return err
		}
	}

	return nil
}

// importTimes persists the fine-stage vertex weights keyed by the station's
// fine grid index.
func importTimes(ctx context.Context, cfg *config.Config, grid *normgrid.Grid, driver *shortestpath.Driver, sta normgrid.Location) error {
	weights, err := driver.VertexWeights()
	if err != nil {
		return err
	}
	staIdx, err := grid.NormIndex(sta, normgrid.StageFine)
	if err != nil {
		return err
	}

	db, err := datastore.NewPostgres(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ImportTimes(ctx, staIdx, weights); err != nil {
		return err
	}
	slog.Info("travel times imported", "station_idx", staIdx, "vertices", len(weights))

	return nil
}

// logLevel maps the configured level name onto slog, defaulting to info.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
