// Command tlstory manages the timeline from the command line: it publishes
// and exports the document, loads seed files, takes backups and lists rows.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"tlstory/internal/config"
)

// CLI definition and global flags
type CLI struct {
	Database string `short:"d" help:"Database URL or SQLite path (overrides DATABASE_URL)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Generate GenerateCmd `cmd:"" help:"Generate the timeline document and write it to the output file"`
	Export   ExportCmd   `cmd:"" help:"Print the timeline document to stdout"`
	Seed     SeedCmd     `cmd:"" help:"Load a YAML or JSON seed file"`
	Backup   BackupCmd   `cmd:"" help:"Write a snapshot of every row to the backup directory"`
	Events   EventsCmd   `cmd:"" help:"List events"`
	Eras     ErasCmd     `cmd:"" help:"List eras"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("tlstory"),
		kong.Description("Timeline document builder"),
		kong.UsageOnError(),
	)

	if err := run(kctx, &cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context, cli *CLI) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cli.Database != "" {
		cfg.DatabaseURL = cli.Database
	}
	if cli.Verbose {
		cfg.LogLevel = "debug"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, config.NewLogger(os.Stderr, cfg.LogLevel), os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	kctx.BindTo(ctx, (*context.Context)(nil))
	return kctx.Run(a)
}
