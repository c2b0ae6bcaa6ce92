package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
	"github.com/fwojciec/carlot/csv"
	"github.com/fwojciec/carlot/fs"
	"github.com/fwojciec/carlot/goquery"
	carhttp "github.com/fwojciec/carlot/http"
	"github.com/fwojciec/carlot/json"
	"github.com/fwojciec/carlot/rod"
	carslog "github.com/fwojciec/carlot/slog"
	"github.com/fwojciec/carlot/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). Overridden by --db.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("carlot"),
		kong.Description("Collect vehicle listings from saved or rendered marketplace pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'carlot --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx)

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	normalizer := carlot.NewNormalizer()
	deps.Normalizer = normalizer
	deps.Detector = goquery.NewDetector()
	deps.Codecs = map[carlot.Format]carlot.Codec{
		carlot.FormatJSON: json.NewCodec(),
		carlot.FormatCSV:  csv.NewCodec(),
	}

	var scraper carlot.Scraper = goquery.NewScraper(
		goquery.WithNormalizer(normalizer),
		goquery.WithLogger(logger),
	)
	if cli.Verbose {
		scraper = carslog.NewLoggingScraper(scraper, logger)
	}
	deps.Scraper = scraper

	// Page loaders are only needed by commands that read pages.
	switch cmd {
	case "scrape":
		deps.Loader, err = m.pageLoader(cli.Scrape.Render, cli.Scrape.URL, cli.Scrape.Timeout, stderr)
	case "detect":
		deps.Loader, err = m.pageLoader(cli.Detect.Render, cli.Detect.URL, cli.Detect.Timeout, stderr)
	}
	if err != nil {
		return err
	}
	if closer, ok := deps.Loader.(io.Closer); ok {
		defer closer.Close()
	}
	if deps.Loader != nil && cli.Verbose {
		deps.Loader = carslog.NewLoggingPageLoader(deps.Loader, logger)
	}

	// detect never touches the collection.
	if cmd == "detect" {
		return kongCtx.Run(deps)
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if m.DBPath != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(m.DBPath), 0755)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CARLOT_DB or --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	var vehicles carlot.VehicleService = sqlite.NewVehicleService(m.DB)
	if cli.Verbose {
		vehicles = carslog.NewLoggingVehicleService(vehicles, logger)
	}
	deps.Vehicles = vehicles

	if cmd == "scrape" {
		deps.Collector = &collect.Collector{
			Loader:      deps.Loader,
			Scraper:     deps.Scraper,
			Vehicles:    deps.Vehicles,
			Limiter:     collect.NewHostLimiter(cli.Scrape.Rate),
			Log:         logger.Warn,
			Debug:       logger.Debug,
			Concurrency: cli.Scrape.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// pageLoader returns a loader that reads files from disk and fetches URLs
// over HTTP, or in headless Chrome when render is set.
func (m *Main) pageLoader(render bool, pageURL string, timeout time.Duration, stderr io.Writer) (carlot.PageLoader, error) {
	loader := &sourceLoader{
		files: fs.NewPageLoader(pageURL),
		web:   carhttp.NewPageLoader(carhttp.WithTimeout(timeout)),
	}
	if !render {
		return loader, nil
	}

	browser, err := rod.NewPageLoader(rod.WithTimeout(timeout))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	loader.web = browser
	return loader, nil
}

// commandName returns the selected command without its arguments.
func commandName(ctx *kong.Context) string {
	if fields := strings.Fields(ctx.Command()); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "carlot.db"
	}
	return filepath.Join(home, ".carlot", "carlot.db")
}
