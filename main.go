package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"tsimports/rewriter"
)

func passFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
			Sources: cli.EnvVars("TSIMPORTS_CONFIG"),
		},
		&cli.StringSliceFlag{
			Name:    "ext",
			Usage:   "source file extension to process (default .ts)",
			Sources: cli.EnvVars("TSIMPORTS_EXT"),
		},
		&cli.StringSliceFlag{
			Name:    "package",
			Aliases: []string{"p"},
			Usage:   "shared package name whose imports are rewritten",
			Sources: cli.EnvVars("TSIMPORTS_PACKAGES"),
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Usage:   "directory name skipped while walking",
			Sources: cli.EnvVars("TSIMPORTS_EXCLUDE"),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "report files that would change without writing them",
			Sources: cli.EnvVars("TSIMPORTS_DRY_RUN"),
		},
		&cli.StringFlag{
			Name:    "report",
			Usage:   "write a YAML report of fixed files to this location",
			Sources: cli.EnvVars("TSIMPORTS_REPORT"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
			Sources: cli.EnvVars("TSIMPORTS_VERBOSE"),
		},
	}
}

func passCommand(pass string, aliases []string, usage string) *cli.Command {
	return &cli.Command{
		Name:      pass,
		Aliases:   aliases,
		Usage:     usage,
		ArgsUsage: "[root]",
		Flags:     passFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := runPass(ctx, cmd, pass)
			return err
		},
	}
}

func RootCommand() *cli.Command {
	cmd := &cli.Command{
		Name:  "tsimports",
		Usage: "rewrite shared package imports across a TypeScript source tree",
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			_ = godotenv.Load()
			return ctx, nil
		},
		Commands: []*cli.Command{
			passCommand(rewriter.PassDepth, []string{"fix"}, "normalize relative import depths after files were moved"),
			passCommand(rewriter.PassAlias, nil, "convert relative imports into alias imports"),
		},
	}
	return cmd
}

func main() {
	cmd := RootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("exited", "error", err)
		os.Exit(1)
	}
}
