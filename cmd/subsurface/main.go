package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OCharnyshevich/subsurface/internal/config"
	"github.com/OCharnyshevich/subsurface/internal/metrics"
	"github.com/OCharnyshevich/subsurface/internal/storage"
	"github.com/OCharnyshevich/subsurface/internal/world"
	"github.com/OCharnyshevich/subsurface/internal/world/chunk"
	"github.com/OCharnyshevich/subsurface/internal/world/gen"
	"github.com/OCharnyshevich/subsurface/internal/world/registry"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file")
	flag.StringVar(&cfg.WorldDir, "world", cfg.WorldDir, "world directory")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "chunk store: file or badger")
	flag.StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "block catalog YAML (built-in when empty)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics on this address")
	flag.StringVar(&cfg.Generator.Type, "generator", cfg.Generator.Type, "terrain generator: flat, simplex or perlin")
	flag.Int64Var(&cfg.Generator.Seed, "seed", cfg.Generator.Seed, "terrain seed")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			slog.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("subsurface", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	st, err := storage.New(cfg.WorldDir, log)
	if err != nil {
		return err
	}
	if _, err := st.EnsureMeta(cfg.Generator.Type, cfg.Generator.Seed); err != nil {
		return err
	}

	reg := registry.Default()
	if cfg.Catalog != "" {
		if reg, err = registry.LoadCatalog(cfg.Catalog); err != nil {
			return err
		}
		log.Info("loaded block catalog", "path", cfg.Catalog, "blocks", reg.Len())
	}

	generator, err := gen.New(cfg.Generator.Options())
	if err != nil {
		return err
	}

	store, err := openStore(cfg, st, log)
	if err != nil {
		return err
	}

	var m *metrics.World
	if cfg.MetricsAddr != "" {
		promReg := prometheus.NewRegistry()
		m = metrics.NewWorld(promReg)
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	w, err := world.New(world.Config{
		Generator: generator,
		Registry:  reg,
		Store:     store,
		Metrics:   m,
		Log:       log,
	})
	if err != nil {
		store.Close()
		return err
	}
	defer w.Close()

	lo, hi := cfg.Region.Bounds()
	if err := w.LoadRegion(lo, hi); err != nil {
		return err
	}

	var meshes, faces int
	for ctx.Err() == nil {
		r, ok := w.CleanChunk()
		if !ok {
			break
		}
		if r.Mesh != nil {
			meshes++
			faces += r.Mesh.Faces()
		}
	}
	log.Info("remeshed region", "meshes", meshes, "faces", faces, "pending", w.DirtyLen())

	if err := w.WriteAllChunks(); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		log.Info("waiting for shutdown signal")
		<-ctx.Done()
	}
	return nil
}

func openStore(cfg *config.Config, st *storage.Storage, log *slog.Logger) (chunk.Store, error) {
	switch cfg.Store {
	case config.StoreBadger:
		return chunk.OpenBadgerStore(st.BadgerDir(), log)
	default:
		return chunk.NewFileStore(st.ChunkDir(), log)
	}
}
