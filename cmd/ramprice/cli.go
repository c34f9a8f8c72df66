package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ramprice"
	"github.com/fwojciec/ramprice/scrape"
	"github.com/fwojciec/ramprice/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Records  ramprice.RecordService
	Scraper  *scrape.Scraper
	Adapters map[string]ramprice.Adapter

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(d.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	return d.Logger
}

func (d *Dependencies) today() ramprice.Date {
	if d.Now == nil {
		return ramprice.DateOf(time.Now())
	}
	return ramprice.DateOf(d.Now())
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug       bool          `help:"Log service calls to stderr"`
	Concurrency int           `env:"RAMPRICE_CONCURRENCY" default:"4" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" env:"RAMPRICE_RPS" default:"1" help:"Requests per second per domain (0 for unlimited)"`
	Timeout     time.Duration `env:"RAMPRICE_TIMEOUT" default:"30s" help:"HTTP request timeout"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape vendor pages for RAM listings"`
	Import  ImportCmd  `cmd:"" help:"Import a YAML price history into the database"`
	Report  ReportCmd  `cmd:"" help:"Summarize a YAML price history by date"`
	Summary SummaryCmd `cmd:"" help:"Summarize stored prices by date"`
	List    ListCmd    `cmd:"" help:"List stored price records"`
}

// FilterFlags are the record filters shared by the reporting commands.
type FilterFlags struct {
	Module int    `short:"m" help:"Only modules of this size in GB; reports price per module"`
	Store  string `short:"s" help:"Only records from this store"`
	Type   string `short:"t" help:"Only records of this module type"`
	From   string `help:"Only records on or after this date (YYYY-MM-DD)"`
	To     string `help:"Only records on or before this date (YYYY-MM-DD)"`
}

// filter returns the record filter for the flags. The module size is left
// out; Summarize applies it itself.
func (f FilterFlags) filter() (ramprice.RecordFilter, error) {
	var filter ramprice.RecordFilter
	if f.Store != "" {
		filter.Store = &f.Store
	}
	if f.Type != "" {
		filter.ModuleType = &f.Type
	}
	if f.From != "" {
		d, err := ramprice.ParseDate(f.From)
		if err != nil {
			return filter, err
		}
		filter.From = &d
	}
	if f.To != "" {
		d, err := ramprice.ParseDate(f.To)
		if err != nil {
			return filter, err
		}
		filter.To = &d
	}
	return filter, nil
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Store   string   `arg:"" enum:"microcenter,newegg" help:"Vendor adapter (microcenter, newegg)"`
	URLs    []string `arg:"" name:"url" help:"Listing page URLs"`
	Type    string   `short:"t" default:"desktop" help:"Module type the listings are recorded under"`
	Name    string   `name:"store-name" help:"Store name to record listings under (defaults to the vendor's)"`
	Date    string   `help:"Date to record listings under (YYYY-MM-DD, defaults to today)"`
	Save    bool     `help:"Store the listings in the database"`
	History string   `env:"RAMPRICE_HISTORY" type:"path" help:"Append the listings to this YAML history file"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path string `arg:"" type:"existingfile" help:"YAML history file"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Path string `arg:"" type:"existingfile" help:"YAML history file"`
	FilterFlags
}

// SummaryCmd is the "summary" subcommand.
type SummaryCmd struct {
	FilterFlags
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	FilterFlags
	Limit  int `short:"n" default:"50" help:"Maximum number of records (0 for all)"`
	Offset int `help:"Number of records to skip"`
}
