package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/parisweather/internal/charts"
	"github.com/lox/parisweather/internal/httputil"
	"github.com/lox/parisweather/internal/ingest"
	"github.com/lox/parisweather/internal/metrics"
	"github.com/lox/parisweather/internal/pipeline"
	"github.com/lox/parisweather/internal/store"
)

const (
	metricsJob  = "parisweather"
	pushTimeout = 10 * time.Second
)

// CLI holds the command line options. Every option has an environment
// fallback and a default that reproduces a plain run.
type CLI struct {
	DataDir     string        `name:"data-dir" help:"Directory for charts and CSV." default:"data" env:"PARISWEATHER_DATA_DIR"`
	APIURL      string        `name:"api-url" help:"Open-Meteo forecast endpoint." default:"${api_url}" env:"PARISWEATHER_API_URL"`
	Timeout     time.Duration `name:"timeout" help:"HTTP timeout for the forecast request (0 waits indefinitely)." default:"0s" env:"PARISWEATHER_TIMEOUT"`
	DB          string        `name:"db" help:"SQLite archive path (empty disables archiving)." env:"PARISWEATHER_DB"`
	Pushgateway string        `name:"pushgateway" help:"Prometheus Pushgateway URL (empty disables pushing)." env:"PARISWEATHER_PUSHGATEWAY"`
}

var vars = kong.Vars{
	"api_url": ingest.DefaultForecastURL,
}

func main() {
	loadDotEnv(".env")

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("parisweather"),
		kong.Description("Fetch the weekly Paris forecast, chart it and export it to CSV."),
		kong.UsageOnError(),
		vars,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kctx.FatalIfErrorf(cli.Run(ctx, os.Stdout))
}

// loadDotEnv loads path into the environment when it exists.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: load %s: %v", path, err)
	}
}

// Run executes one job and pushes metrics afterwards when a Pushgateway is
// configured, whether or not the job succeeded.
func (c *CLI) Run(ctx context.Context, out io.Writer) error {
	runErr := c.run(ctx, out)

	if c.Pushgateway != "" {
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
		defer cancel()
		if err := metrics.Push(pushCtx, c.Pushgateway, metricsJob); err != nil {
			log.Printf("warning: %v", err)
		}
	}
	return runErr
}

func (c *CLI) run(ctx context.Context, out io.Writer) error {
	renderer, err := charts.NewGoChart()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}

	client := ingest.NewClient(httputil.NewClient(c.Timeout), c.APIURL)
	p := pipeline.New(client, renderer, c.DataDir, out)

	if c.DB != "" {
		st, err := store.Open(c.DB)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer st.Close()
		p.SetStore(st)
	}

	return p.Run(ctx)
}
