package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/seo-auditor/internal/config"
	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/httpx"
	"github.com/baxromumarov/seo-auditor/internal/observability"
)

// app carries what subcommands share once flags are parsed.
type app struct {
	cfg        *config.Config
	newFetcher func(cfg *config.Config) core.PageFetcher
	newRobots  func(cfg *config.Config) core.RobotsChecker
}

func (a *app) service() *core.AuditService {
	opts := []core.AuditOption{core.WithBatchLimit(a.cfg.BatchLimit)}
	if a.newRobots != nil {
		opts = append(opts, core.WithRobots(a.newRobots(a.cfg)))
	}
	return core.NewAuditService(a.newFetcher(a.cfg), observability.NewStats(), opts...)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{
		newFetcher: func(cfg *config.Config) core.PageFetcher {
			return cfg.NewFetcher()
		},
		newRobots: func(cfg *config.Config) core.RobotsChecker {
			return httpx.NewPoliteClient(cfg.UserAgent, cfg.FetchTimeout)
		},
	})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seoaudit",
		Short: "Heuristic SEO audits from the command line",
		Long: `seoaudit fetches a page, scores it against a fixed set of on-page SEO rules
and prints the issues, recommendations and keywords it found.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg

			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if verbose {
				level = cfg.SlogLevel()
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable logging to stderr")

	cmd.AddCommand(newAuditCmd(a))
	cmd.AddCommand(newBriefCmd(a))
	cmd.AddCommand(newKeywordsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
