// Command job-assigner runs one assignment round over a job roster and
// persists the result so the next invocation can continue the session.
//
// Usage:
//
//	job-assigner -jobs chores.xlsx -people 6 -out assignments.csv
//	job-assigner -resume -out assignments.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	jobassigner "github.com/hakkd/job-assigner"
	"github.com/hakkd/job-assigner/export"
	"github.com/hakkd/job-assigner/internal/logging"
	"github.com/hakkd/job-assigner/internal/metrics"
	"github.com/hakkd/job-assigner/source"
	"github.com/hakkd/job-assigner/store"
	"github.com/hakkd/job-assigner/types"
)

// Placeholder display names given to generated people.
const (
	defaultFirstName = "first name"
	defaultLastName  = "last name"
)

type options struct {
	configPath  string
	jobsPath    string
	sheet       string
	people      int
	outPath     string
	statePath   string
	resume      bool
	metricsAddr string
	logLevel    string
	logFormat   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("job-assigner: %v", err)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("job-assigner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	fs.StringVar(&opts.jobsPath, "jobs", "", "Workbook (.xlsx) whose first column lists the jobs")
	fs.StringVar(&opts.sheet, "sheet", "", "Worksheet to read (first sheet if empty)")
	fs.IntVar(&opts.people, "people", 0, "Number of people to assign")
	fs.StringVar(&opts.outPath, "out", "-", "CSV output path, - for stdout")
	fs.StringVar(&opts.statePath, "state", "", "State file for the file backend (overrides config)")
	fs.BoolVar(&opts.resume, "resume", false, "Continue the saved session instead of starting a new one")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if !opts.resume {
		if opts.jobsPath == "" {
			return opts, errors.New("-jobs is required unless -resume is set")
		}
		if opts.people <= 0 {
			return opts, errors.New("-people must be positive")
		}
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := logging.New(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var collector types.MetricsCollector = metrics.NewNop()
	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector = metrics.NewPrometheus(reg, "")

		_, shutdown, err := serveMetrics(opts.metricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	st, closeStore, err := openStore(ctx, cfg, collector, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	eng, err := jobassigner.NewEngine(cfg,
		jobassigner.WithLogger(logger),
		jobassigner.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	if err := prepare(ctx, eng, st, cfg, opts); err != nil {
		return err
	}

	if err := eng.RunRound(ctx); err != nil {
		return err
	}

	if err := exporter(opts.outPath, stdout).Export(ctx, eng.Assignments()); err != nil {
		return fmt.Errorf("export assignments: %w", err)
	}

	saveCtx, cancel := context.WithTimeout(ctx, cfg.Store.OperationTimeout)
	defer cancel()
	if err := st.Save(saveCtx, eng.Snapshot()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	logger.Info("session saved", "round", eng.Round(), "backend", cfg.Store.Backend)

	return nil
}

func loadConfig(opts options) (*jobassigner.Config, error) {
	cfg := jobassigner.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := jobassigner.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if opts.statePath != "" {
		cfg.Store.Path = opts.statePath
	}

	return &cfg, nil
}

// prepare populates the engine from the roster or the saved session. The
// store is always loaded first so that it knows the revision it overwrites.
func prepare(ctx context.Context, eng *jobassigner.Engine, st types.StateStore, cfg *jobassigner.Config, opts options) error {
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Store.OperationTimeout)
	defer cancel()

	snap, err := st.Load(loadCtx)
	switch {
	case err == nil:
	case errors.Is(err, types.ErrStateNotFound) && !opts.resume:
	case errors.Is(err, types.ErrStateNotFound):
		return fmt.Errorf("nothing to resume: %w", err)
	default:
		return fmt.Errorf("load state: %w", err)
	}

	if opts.resume {
		if err := eng.Restore(snap); err != nil {
			return err
		}
	}

	if opts.jobsPath != "" {
		var srcOpts []source.SpreadsheetOption
		if opts.sheet != "" {
			srcOpts = append(srcOpts, source.WithSheet(opts.sheet))
		}
		if _, err := eng.LoadJobs(ctx, source.NewSpreadsheet(opts.jobsPath, srcOpts...)); err != nil {
			return err
		}
	}

	if !opts.resume {
		for id := 1; id <= opts.people; id++ {
			if err := eng.AddPerson(jobassigner.NewPerson(id, defaultFirstName, defaultLastName)); err != nil {
				return err
			}
		}
	}

	return nil
}

func openStore(ctx context.Context, cfg *jobassigner.Config, m types.StoreMetrics, logger types.Logger) (types.StateStore, func(), error) {
	storeOpts := []store.Option{store.WithMetrics(m), store.WithLogger(logger)}

	switch cfg.Store.Backend {
	case jobassigner.StoreBackendKV:
		url := cfg.Store.NATSURL
		if url == "" {
			url = nats.DefaultURL
		}

		nc, err := nats.Connect(url, nats.Name("job-assigner"), nats.Timeout(cfg.Store.OperationTimeout))
		if err != nil {
			return nil, nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
		}

		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("create JetStream handle: %w", err)
		}

		openCtx, cancel := context.WithTimeout(ctx, cfg.Store.OperationTimeout)
		defer cancel()

		st, err := store.NewKV(openCtx, js, store.KVConfig{Bucket: cfg.Store.Bucket, Key: cfg.Store.Key}, storeOpts...)
		if err != nil {
			nc.Close()
			return nil, nil, err
		}

		return st, func() { _ = nc.Drain() }, nil
	default:
		return store.NewFile(cfg.Store.Path, storeOpts...), func() {}, nil
	}
}

func exporter(path string, stdout io.Writer) types.ResultExporter {
	if path == "" || path == "-" {
		return export.NewCSVWriter(stdout)
	}

	return export.NewCSVFile(path)
}

// serveMetrics exposes reg on addr until the returned function is called.
// It returns the bound address, which differs from addr for port 0.
func serveMetrics(addr string, reg *prometheus.Registry, logger types.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
