package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"tsimports/rewriter"
)

// loadConfig merges the config file, positional root and flags, in that order.
func loadConfig(ctx context.Context, cmd *cli.Command) (*rewriter.Config, error) {
	cfg := rewriter.DefaultConfig()
	if location := cmd.String("config"); location != "" {
		loaded, err := rewriter.LoadConfig(ctx, location)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dir := cmd.Args().Get(0); dir != "" {
		cfg.Root = dir
	}
	if cfg.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.Root = cwd
	}

	if values := cmd.StringSlice("ext"); len(values) > 0 {
		cfg.Extensions = values
	}
	if values := cmd.StringSlice("package"); len(values) > 0 {
		cfg.Packages = values
	}
	if values := cmd.StringSlice("exclude"); len(values) > 0 {
		cfg.Exclude = values
	}
	if cmd.IsSet("dry-run") {
		cfg.DryRun = cmd.Bool("dry-run")
	}
	if location := cmd.String("report"); location != "" {
		cfg.Report = location
	}
	return cfg, cfg.Validate()
}

func runPass(ctx context.Context, cmd *cli.Command, pass string) (*rewriter.Report, error) {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}
	rw, err := cfg.Rewriter(pass)
	if err != nil {
		return nil, err
	}

	slog.Info("rewrite imports.", "pass", pass, "root", cfg.Root, "dryRun", cfg.DryRun)

	return rewriter.NewRunner(cfg, rw, cmd.Root().Writer).Run(ctx)
}
