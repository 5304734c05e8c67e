package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

func newKeywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords [file|-]",
		Short: "Extract keywords from plain text",
		Long:  `Read text from a file (or stdin when the argument is "-" or missing) and print the top keywords, one per line.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			data, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			keywords := audit.ExtractKeywords(string(data))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), keywords)
			}
			for _, kw := range keywords {
				fmt.Fprintln(cmd.OutOrStdout(), kw)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Print a JSON array")
	return cmd
}
