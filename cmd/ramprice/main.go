package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ramprice"
	ramhttp "github.com/fwojciec/ramprice/http"
	"github.com/fwojciec/ramprice/microcenter"
	"github.com/fwojciec/ramprice/newegg"
	"github.com/fwojciec/ramprice/scrape"
	rpslog "github.com/fwojciec/ramprice/slog"
	"github.com/fwojciec/ramprice/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService ramprice.RecordService
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
		kong.Name("ramprice"),
		kong.Description("Track RAM module prices scraped from vendor listings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ramprice --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := commandName(kongCtx.Command())

	// Service calls are only logged with --debug.
	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	deps.Logger = logger

	if needsDB(cmd, cli) {
		if m.RecordService == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set RAMPRICE_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DB.Path(), err)
			}
			defer m.Close()
			m.RecordService = sqlite.NewRecordService(m.DB)
		}
		deps.DB = m.DB
		deps.Records = m.RecordService
		if cli.Debug {
			deps.Records = rpslog.NewLoggingRecordService(deps.Records, logger)
		}
	}

	if cmd == "scrape" {
		var fetcher ramprice.Fetcher = ramhttp.NewFetcher(ramhttp.WithTimeout(cli.Timeout))
		adapters := map[string]ramprice.Adapter{
			"microcenter": microcenter.NewAdapter(),
			"newegg":      newegg.NewAdapter(),
		}
		if cli.Debug {
			fetcher = rpslog.NewLoggingFetcher(fetcher, logger)
			for name, a := range adapters {
				adapters[name] = rpslog.NewLoggingAdapter(a, logger)
			}
		}
		deps.Adapters = adapters
		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			RateLimiter: scrape.NewDomainLimiter(cli.RPS),
			Concurrency: cli.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// commandName returns the leading word of a kong command path such as
// "scrape <store> <url>".
func commandName(path string) string {
	name, _, _ := strings.Cut(path, " ")
	return name
}

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "import", "summary", "list":
		return true
	case "scrape":
		return cli.Scrape.Save
	}
	return false
}

// defaultDBPath returns the default database path.
// Uses RAMPRICE_DB env var if set, otherwise ~/.ramprice/ramprice.db.
func defaultDBPath() string {
	if path := os.Getenv("RAMPRICE_DB"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "ramprice.db"
	}

	dir := filepath.Join(home, ".ramprice")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "ramprice.db"
	}

	return filepath.Join(dir, "ramprice.db")
}
