package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"waste-collection-sim/internal/adapters/cache"
	"waste-collection-sim/internal/adapters/history"
	"waste-collection-sim/internal/adapters/loader"
	"waste-collection-sim/internal/api"
	"waste-collection-sim/internal/config"
	"waste-collection-sim/internal/domain"
	"waste-collection-sim/internal/graph"
	"waste-collection-sim/internal/platform/db"
	"waste-collection-sim/internal/platform/obs"
	"waste-collection-sim/internal/ports"
	"waste-collection-sim/internal/services"
)

const defaultDays = 7

type options struct {
	dataFile string
	days     int
	noUI     bool
	help     bool
}

// main is the application composition root. It wires the scenario loader,
// the optional Redis distance cache and run-history store behind ports,
// and either runs the simulation to completion or serves the HTTP view
// layer.
func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if opts.help {
		printUsage(os.Stdout)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (options, error) {
	opts := options{days: defaultDays}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.help = true
			return opts, nil
		case arg == "--no-ui":
			opts.noUI = true
		case arg == "--days":
			i++
			if i >= len(args) {
				return opts, errors.New("--days requires a value")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--days must be a positive integer, got %q", args[i])
			}
			opts.days = n
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown option %q", arg)
		case opts.dataFile == "":
			opts.dataFile = arg
		default:
			return opts, fmt.Errorf("unexpected argument %q", arg)
		}
	}

	if opts.dataFile == "" {
		return opts, errors.New("data file is required")
	}
	return opts, nil
}

func printUsage(w *os.File) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "Usage: %s <data_file.json> [options]\n", prog)
	fmt.Fprintln(w, "\nOptions:")
	fmt.Fprintln(w, "  --no-ui          Run without the HTTP view layer (text output only)")
	fmt.Fprintf(w, "  --days N         Set simulation duration (default: %d)\n", defaultDays)
	fmt.Fprintln(w, "  --help, -h       Show this help message")
	fmt.Fprintln(w, "\nEnvironment:")
	fmt.Fprintln(w, "  PORT             View-layer listen port (default: 8080)")
	fmt.Fprintln(w, "  REDIS_ADDR       Enable the Redis distance cache")
	fmt.Fprintln(w, "  HISTORY_DB_PATH  Record per-day metrics in a SQLite file")
	fmt.Fprintln(w, "  DATABASE_URL     Record per-day metrics in Postgres instead")
	fmt.Fprintln(w, "  URGENCY_WEIGHT   Planner urgency-over-distance weight (default: 1000)")
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintf(w, "  %s data/data.json\n", prog)
	fmt.Fprintf(w, "  %s data/data.json --no-ui\n", prog)
	fmt.Fprintf(w, "  %s data/data.json --days 3\n", prog)
}

func run(opts options) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	sc, err := loader.Load(opts.dataFile)
	if err != nil {
		return err
	}
	g, world, err := loader.BuildWorld(sc)
	if err != nil {
		return err
	}

	scenarioKey := filepath.Base(opts.dataFile)
	ctx := context.Background()

	estimator := buildEstimator(ctx, g, world, scenarioKey)

	cfg := services.DefaultPlannerConfig()
	cfg.UrgencyWeight = config.GetInt("URGENCY_WEIGHT", cfg.UrgencyWeight)
	cfg.CriticalThresholdDays = config.GetInt("CRITICAL_THRESHOLD_DAYS", cfg.CriticalThresholdDays)
	planner := services.NewRoutePlanner(estimator, cfg)
	sim := services.NewSimulationWith(g, world, planner, opts.days)
	session := services.NewSession(sim)

	store, closeStore, err := openRunStore()
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	if opts.noUI {
		runTextMode(ctx, sim, store, scenarioKey, opts)
		return nil
	}

	return serveView(sim, session)
}

// buildEstimator returns the distance source for the planner: the graph
// itself, or a warmed matrix when a Redis cache is configured. Cache
// problems degrade to live computation.
func buildEstimator(ctx context.Context, g *graph.Graph, world *domain.Facilities, scenarioKey string) services.DistanceEstimator {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return g
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	distanceCache := cache.NewRedisDistanceCache(client)

	nodes := make([]int, 0, world.BinCount()+world.FacilityCount())
	if depot, ok := world.DepotNode(); ok {
		nodes = append(nodes, depot)
	}
	nodes = append(nodes, world.DisposalNodes()...)
	for i := 0; i < world.BinCount(); i++ {
		nodes = append(nodes, world.Bin(i).NodeID)
	}

	matrix, err := services.WarmDistances(ctx, g, nodes, distanceCache, scenarioKey)
	if err != nil {
		log.Printf("distance warm-up failed: %v", err)
		return g
	}
	return matrix
}

// openRunStore picks the run-history backend: Postgres when DATABASE_URL
// is set, a SQLite file when HISTORY_DB_PATH is set, otherwise none.
func openRunStore() (ports.RunStore, func(), error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := history.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return history.NewSQLRunStore(conn), func() { conn.Close() }, nil
	}

	if path := os.Getenv("HISTORY_DB_PATH"); strings.TrimSpace(path) != "" {
		conn, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, nil, fmt.Errorf("open run history: open sqlite database %q: %w", path, err)
		}
		if err := history.InitSqliteSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return history.NewSqliteRunStore(conn), func() { conn.Close() }, nil
	}

	return nil, nil, nil
}

func runTextMode(ctx context.Context, sim *services.Simulation, store ports.RunStore, scenarioKey string, opts options) {
	truck := sim.TruckState()
	fmt.Println("=== Waste Collection Simulation ===")
	fmt.Printf("Loading data from: %s\n\n", opts.dataFile)
	fmt.Println("System Configuration:")
	fmt.Printf("  Bins:       %d\n", sim.BinCount())
	fmt.Printf("  Facilities: %d\n", sim.Facilities().FacilityCount())
	fmt.Printf("  Truck:      %s (capacity: %d)\n", truck.ID, truck.Capacity)
	fmt.Printf("  Duration:   %d days\n", opts.days)
	fmt.Println("\nRunning simulation...")

	for !sim.IsFinished() {
		sim.Step()
		recordDay(ctx, sim, store, scenarioKey)
	}

	fmt.Println()
	printStatistics(sim)
}

func recordDay(ctx context.Context, sim *services.Simulation, store ports.RunStore, scenarioKey string) {
	if store == nil {
		return
	}
	row := ports.DayMetrics{
		Scenario:             scenarioKey,
		Day:                  sim.CurrentTime(),
		TotalDistance:        sim.TotalDistance(),
		CollectionsCompleted: sim.CollectionsCompleted(),
		OverflowCount:        sim.OverflowCount(),
		TruckLoad:            sim.TruckState().Load,
	}
	if err := store.RecordDay(obs.WithDay(ctx, row.Day), row); err != nil {
		log.Printf("record day failed day=%d err=%v", row.Day, err)
	}
}

func printStatistics(sim *services.Simulation) {
	days := sim.MaxTime()
	avgDistance, avgCollections := 0, 0
	if days > 0 {
		avgDistance = sim.TotalDistance() / days
		avgCollections = sim.CollectionsCompleted() / days
	}

	fmt.Println("======= Simulation Statistics =======")
	fmt.Printf("Simulation Duration: %d days\n", days)
	fmt.Printf("Distance Traveled: %d units\n", sim.TotalDistance())
	fmt.Printf("Overflow Event(s): %d\n", sim.OverflowCount())
	fmt.Printf("Collections Completed: %d\n", sim.CollectionsCompleted())
	fmt.Printf("Average Distance per Day: %d units\n", avgDistance)
	fmt.Printf("Average Collections per Day: %d\n", avgCollections)
	fmt.Println("=====================================")
}

func serveView(sim *services.Simulation, session *services.Session) error {
	router := api.NewRouter(sim, session)
	port := config.Get("PORT", "8080")

	log.Printf("View layer listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("serve view layer: %w", err)
	}
	return nil
}
