package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/report"
)

var errUnknownFormat = errors.New("unknown format: use json, markdown or pdf")

func newAuditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <url> [url...]",
		Short: "Audit one or more pages",
		Long: `Fetch each URL and print its SEO score, issues and recommendations.
Several URLs are audited concurrently and printed as a JSON list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			return runAudit(cmd, a, args, format, output)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json, markdown or pdf")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runAudit(cmd *cobra.Command, a *app, urls []string, format, output string) error {
	switch format {
	case "json", "markdown", "pdf":
	default:
		return errUnknownFormat
	}
	if format == "pdf" && output == "" {
		return errors.New("pdf output needs --output")
	}

	svc := a.service()
	ctx := cmd.Context()

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	if len(urls) > 1 {
		if format != "json" {
			return errors.New("multiple urls only support --format json")
		}
		items, err := svc.AuditBatch(ctx, urls)
		if err != nil {
			return err
		}
		return writeJSON(w, items)
	}

	rep, err := svc.Audit(ctx, urls[0])
	if err != nil {
		var auditErr *core.AuditError
		if errors.As(err, &auditErr) {
			if werr := writeJSON(w, auditErr.Failure()); werr != nil {
				return werr
			}
			return fmt.Errorf("audit failed: %s", auditErr.Code)
		}
		return err
	}

	switch format {
	case "markdown":
		return report.WriteMarkdown(w, urls[0], rep.Result)
	case "pdf":
		return report.WritePDF(w, urls[0], rep.Result)
	default:
		return writeJSON(w, rep)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
