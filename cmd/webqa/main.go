package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webqa"
	wqprom "github.com/fwojciec/webqa/prometheus"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Dotenv file loaded before flags are parsed. A missing file is ignored.
	EnvFile string

	// Services for end-to-end testing. Run wires real implementations for
	// any left nil.
	Service   webqa.QueryService
	Fetcher   webqa.Fetcher
	Extractor webqa.Extractor

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnv(m.EnvFile); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webqa"),
		kong.Description("Answer questions from live web search results with an LLM"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webqa --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger, err = NewLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	defer m.Close()
	cmd := strings.Fields(kongCtx.Command())[0]
	if err := m.wire(ctx, cmd, &cli.Config, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the services cmd needs, reusing any preset on m.
func (m *Main) wire(ctx context.Context, cmd string, cfg *Config, deps *Dependencies) error {
	if cmd == "version" {
		return nil
	}

	if m.Extractor == nil {
		m.Extractor = NewExtractor(cfg.Extractor)
	}
	deps.Extractor = m.Extractor

	metrics := wqprom.NewMetrics()
	deps.Metrics = metrics.Handler()

	if m.Fetcher == nil {
		fetcher, err := NewFetcher(cfg, deps.Logger, metrics)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: the rod fetch backend needs Chrome or Chromium installed")
			return fmt.Errorf("failed to create fetcher: %w", err)
		}
		m.closers = append(m.closers, fetcher)
		m.Fetcher = fetcher
	}
	deps.Fetcher = m.Fetcher

	if cmd == "fetch" {
		return nil
	}

	if m.Service == nil {
		svc, err := NewService(ctx, cfg, m.Fetcher, m.Extractor, deps.Logger, metrics)
		if err != nil {
			return err
		}
		m.Service = svc
	}
	deps.Service = m.Service
	return nil
}

// loadEnv loads path into the environment without overriding variables
// that are already set.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
