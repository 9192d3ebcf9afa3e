package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ronniel12/food-sales-dashboard/internal/analytics"
	"github.com/ronniel12/food-sales-dashboard/internal/config"
	"github.com/ronniel12/food-sales-dashboard/internal/importer"
	"github.com/ronniel12/food-sales-dashboard/internal/server"
	"github.com/ronniel12/food-sales-dashboard/internal/store"
	"github.com/ronniel12/food-sales-dashboard/internal/util"
)

var (
	port    = flag.Int("port", 0, "HTTP port (config.toml wins; applies only when no port is configured)")
	devMode = flag.Bool("dev", false, "dev mode: no browser launch, front-end routes go to the Vite server")
	dataDir = flag.String("data-dir", "", "data directory (overrides config)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Food Sales Dashboard")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// flags override config only when not pinned there
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
		info.PortSpecified = true
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	resolvedDataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("create data dir failed: %v", err)
	} else {
		fmt.Printf("data dir: %s\n", resolvedDataDir)
	}

	st := store.NewMemoryStore()

	runStartupLoad(st, config.SalesFilePath(cfg))
	logLoadedDataset(st)

	if !info.PortSpecified {
		cfg.Server.Port = util.FindAvailablePort(cfg.Server.Port)
	}

	srv := server.NewServer(cfg, st, config.ConfigPath())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("listening on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("could not open a browser, visit %s manually\n", url)
		}
	} else {
		fmt.Printf("dev mode: visit %s\n", url)
	}

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
}

// runStartupLoad loads the configured sales workbook, if present. A missing
// or broken file is logged and the dashboard starts empty; there is no
// retry.
func runStartupLoad(st *store.MemoryStore, salesPath string) {
	if salesPath == "" {
		return
	}
	if _, err := os.Stat(salesPath); err != nil {
		log.Printf("no sales workbook at %s; start with an upload", salesPath)
		return
	}

	coordinator := importer.NewCoordinator(st)
	for event := range coordinator.Import(importer.ImportOptions{FilePath: salesPath}) {
		switch event.Type {
		case "warning":
			log.Printf("load warning: %s", event.Message)
		case "error":
			log.Printf("load failed: %s", event.Message)
		default:
			log.Printf("load: %s", event.Message)
		}
	}
}

func logLoadedDataset(st *store.MemoryStore) {
	ds := st.Dataset()
	if ds == nil {
		return
	}

	rows := analytics.SummaryTable(ds)
	if len(rows) == 0 {
		return
	}
	best := rows[0]
	log.Printf("loaded %d categories x %d periods; best seller %s (total %.1f, trend %s)",
		len(ds.Categories), len(ds.Periods), best.Category, best.Total,
		util.FormatPercent(analytics.Round1(best.TrendPct)))
}
