package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	pagessync "github.com/goliatone/go-pages-sync"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("pages-sync: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pages-sync <publish|import|sync-config|sync-homepage|preview> [flags]")
	}

	command, rest := args[0], args[1:]
	switch command {
	case "publish":
		return runPublish(rest)
	case "import":
		return runImport(rest)
	case "sync-config":
		return runSyncConfig(rest)
	case "sync-homepage":
		return runSyncHomepage(rest)
	case "preview":
		return runPreview(rest)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func commonFlags(fs *flag.FlagSet) func() (pagessync.Config, error) {
	repo := fs.String("repo", os.Getenv("PAGES_SYNC_REPO"), "Repository URL (https://github.com/owner/repo)")
	token := fs.String("token", os.Getenv("PAGES_SYNC_TOKEN"), "Access token used for API requests")
	dsn := fs.String("dsn", os.Getenv("PAGES_SYNC_DSN"), "SQLite DSN for local storage (empty keeps state in memory)")
	logLevel := fs.String("log-level", "info", "Minimum log level")
	logFormat := fs.String("log-format", "console", "Log output format (json, console, pretty)")

	return func() (pagessync.Config, error) {
		cfg := pagessync.DefaultConfig()
		cfg.Remote.RepoURL = *repo
		cfg.Remote.Token = *token
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Level = *logLevel
		cfg.Logging.Format = *logFormat
		if *dsn != "" {
			cfg.Storage.Provider = "bun"
			cfg.Storage.DSN = *dsn
		}
		return cfg, cfg.Validate()
	}
}

func runPublish(args []string) error {
	fs := flag.NewFlagSet("pages-sync publish", flag.ExitOnError)
	load := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := load()
	if err != nil {
		return err
	}

	module, err := pagessync.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	run, err := module.Publisher().PublishAndRefresh(ctx)
	if err != nil {
		return err
	}

	if !run.Executed() {
		if run.RemainingSeconds > 0 {
			fmt.Printf("publish declined (%s): retry in %ds\n", run.Declined, run.RemainingSeconds)
		} else {
			fmt.Printf("publish declined (%s)\n", run.Declined)
		}
		return nil
	}

	fmt.Printf("published %d artifacts\n", run.Succeeded)
	for _, msg := range run.Errors {
		fmt.Printf("  error: %s\n", msg)
	}
	if run.SiteURL != "" {
		fmt.Printf("site: %s\n", run.SiteURL)
	}
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("pages-sync import", flag.ExitOnError)
	load := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := load()
	if err != nil {
		return err
	}

	module, err := pagessync.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	count, err := module.Publisher().ImportPosts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d posts\n", count)
	return nil
}

func runSyncConfig(args []string) error {
	fs := flag.NewFlagSet("pages-sync sync-config", flag.ExitOnError)
	load := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := load()
	if err != nil {
		return err
	}

	module, err := pagessync.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := module.Publisher().SyncSiteConfig(ctx); err != nil {
		return err
	}
	fmt.Println("site configuration synced")
	return nil
}

func runSyncHomepage(args []string) error {
	fs := flag.NewFlagSet("pages-sync sync-homepage", flag.ExitOnError)
	load := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := load()
	if err != nil {
		return err
	}

	module, err := pagessync.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := module.Publisher().SyncHomepage(ctx); err != nil {
		return err
	}
	fmt.Println("homepage synced")
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("pages-sync preview", flag.ExitOnError)
	file := fs.String("file", "", "Markdown file to render (defaults to stdin)")
	safe := fs.Bool("safe", false, "Strip raw HTML from the output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var source []byte
	var err error
	if *file != "" {
		source, err = os.ReadFile(*file)
	} else {
		source, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	// Preview is local only; the module never contacts the remote, so the
	// placeholder credentials are never used.
	cfg := pagessync.DefaultConfig()
	cfg.Remote.RepoURL = "https://github.com/preview/preview"
	cfg.Remote.Token = "preview"
	cfg.Markdown.SafeMode = *safe

	module, err := pagessync.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	html, err := module.Markdown().Render(source)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(html)
	return err
}
