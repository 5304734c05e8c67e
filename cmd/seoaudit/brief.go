package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/seo-auditor/internal/core"
)

func newBriefCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Generate a content brief",
		Long: `Generate a content brief for a topic. With --url the page is fetched and its
keywords feed the brief; without --topic the topic is taken from the page title.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			topic, err := cmd.Flags().GetString("topic")
			if err != nil {
				return err
			}
			pageURL, err := cmd.Flags().GetString("url")
			if err != nil {
				return err
			}

			brief, err := a.service().Brief(cmd.Context(), topic, pageURL)
			if err != nil {
				var auditErr *core.AuditError
				if errors.As(err, &auditErr) {
					return fmt.Errorf("fetch %s: %s", pageURL, auditErr.Failure().Error)
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), brief)
		},
	}

	cmd.Flags().StringP("topic", "t", "", "Topic of the brief")
	cmd.Flags().StringP("url", "u", "", "Page to derive keywords (and the topic) from")
	return cmd
}
