package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/carlot"
	"github.com/fwojciec/carlot/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Vehicles   carlot.VehicleService
	Scraper    carlot.Scraper
	Detector   carlot.SiteDetector
	Loader     carlot.PageLoader
	Collector  *collect.Collector
	Normalizer *carlot.Normalizer
	Codecs     map[carlot.Format]carlot.Codec
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"CARLOT_DB" help:"Database path (default ~/.carlot/carlot.db)"`
	Verbose bool   `short:"v" env:"CARLOT_VERBOSE" help:"Log pipeline activity to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape vehicle listings from saved pages or live URLs"`
	Detect DetectCmd `cmd:"" help:"Show which marketplace a page belongs to"`
	List   ListCmd   `cmd:"" help:"List stored vehicles"`
	Show   ShowCmd   `cmd:"" help:"Show one vehicle and its validation report"`
	Delete DeleteCmd `cmd:"" help:"Delete a vehicle"`
	Clear  ClearCmd  `cmd:"" help:"Delete every stored vehicle"`
	Export ExportCmd `cmd:"" help:"Export vehicles as JSON or CSV"`
	Import ImportCmd `cmd:"" help:"Import vehicles from a JSON or CSV file"`
	Trim   TrimCmd   `cmd:"" help:"Keep only the most recently scraped vehicles"`
	Stats  StatsCmd  `cmd:"" help:"Summarize the stored collection"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Sources     []string      `arg:"" name:"sources" help:"Saved HTML files or page URLs"`
	URL         string        `short:"u" help:"Page URL for saved files without a saved-from comment"`
	Render      bool          `short:"r" help:"Render URLs in headless Chrome instead of fetching them"`
	Timeout     time.Duration `default:"30s" help:"Per-page load timeout for URLs"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent page loads"`
	Rate        float64       `default:"1" help:"Page loads per second per host"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	Source  string        `arg:"" help:"Saved HTML file or page URL"`
	URL     string        `short:"u" help:"Page URL for a saved file without a saved-from comment"`
	Render  bool          `short:"r" help:"Render the URL in headless Chrome instead of fetching it"`
	Timeout time.Duration `default:"30s" help:"Load timeout for URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `short:"s" help:"Only vehicles from this marketplace (e.g. CarGurus)"`
	Make   string `short:"m" help:"Only vehicles of this make"`
	Year   int    `short:"y" help:"Only vehicles of this model year"`
	Search string `short:"q" help:"Match title, make, model or location"`
	Limit  int    `short:"n" default:"50" help:"Maximum vehicles to show (0 for all)"`
	Offset int    `help:"Vehicles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Vehicle ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Vehicle ID"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Format string `short:"f" help:"Output format (json or csv); guessed from --output when omitted"`
	Output string `short:"o" help:"Output file (default stdout)"`
	Source string `short:"s" help:"Only vehicles from this marketplace"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File   string `arg:"" help:"JSON or CSV file to import"`
	Format string `short:"f" help:"Input format (json or csv); guessed from the file name when omitted"`
}

// TrimCmd is the "trim" subcommand.
type TrimCmd struct {
	Max int `default:"1000" help:"Number of newest vehicles to keep"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// codec returns the codec for the named format. An empty name falls back
// to guessing from path.
func (deps *Dependencies) codec(name, path string) (carlot.Codec, error) {
	format := carlot.FormatForPath(path)
	if name != "" {
		var err error
		if format, err = carlot.ParseFormat(name); err != nil {
			return nil, err
		}
	}
	c, ok := deps.Codecs[format]
	if !ok {
		return nil, carlot.Errorf(carlot.EINVALID, "unsupported format %q", format)
	}
	return c, nil
}
