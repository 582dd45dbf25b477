// Command worldget fetches a persisted world directory, for example
//
//	worldget -src "git::https://example.com/worlds.git//spawn" -o ./world
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/subsurface/internal/storage"
)

func main() {
	var (
		src   = flag.String("src", "", "go-getter source URL of the world directory")
		out   = flag.String("o", "./world", "destination world directory")
		force = flag.Bool("force", false, "replace an existing world directory")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *src == "" {
		log.Error("source url required")
		os.Exit(2)
	}

	path, err := filepath.Abs(*out)
	if err != nil {
		log.Error("resolve output dir", "error", err)
		os.Exit(1)
	}

	if _, err := os.Stat(path); err == nil {
		if !*force {
			log.Error("world directory exists, use -force to replace it", "path", path)
			os.Exit(1)
		}
		if err := os.RemoveAll(path); err != nil {
			log.Error("remove world directory", "error", err)
			os.Exit(1)
		}
	}

	log.Info("start downloading world", "src", *src, "path", path)
	if err := get.Get(path, *src); err != nil {
		log.Error("download world", "error", err)
		os.Exit(1)
	}

	st, err := storage.New(path, log)
	if err != nil {
		log.Error("open world", "error", err)
		os.Exit(1)
	}
	m, err := st.LoadMeta()
	if err != nil {
		log.Error("read world meta", "error", err)
		os.Exit(1)
	}
	if m == nil {
		log.Warn("downloaded directory has no world.yaml; it will be initialised on first run", "path", path)
		return
	}
	log.Info("done downloading world", "id", m.ID, "generator", m.Generator, "seed", m.Seed)
}
