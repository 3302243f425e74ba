package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jarednogo/rustsgf/internal/common"
	"github.com/jarednogo/rustsgf/internal/domain/sgf"
)

func main() {
	root := &cobra.Command{
		Use:           "sgf",
		Short:         "Inspect and transform SGF game records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFmtCmd(), newRedactCmd(), newStatsCmd(), newTokensCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func parseFile(path string) (*sgf.Collection, error) {
	text, err := common.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	return sgf.Parse(text)
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Parse a record and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := parseFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), coll.String())
			return nil
		},
	}
}

func newRedactCmd() *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "redact <file>",
		Short: "Blank out property values (player names by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := parseFile(args[0])
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				keys = []string{"PB", "PW"}
			}
			for _, key := range keys {
				coll = coll.StripKey(key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), coll.String())
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "property identifier to strip (repeatable)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show property identifier counts for a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := parseFile(args[0])
			if err != nil {
				return err
			}

			counts := coll.CountProperties()
			idents := make([]string, 0, len(counts))
			for ident := range counts {
				idents = append(idents, ident)
			}
			sort.Strings(idents)

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Property", "Count"})
			for _, ident := range idents {
				table.Append([]string{ident, fmt.Sprintf("%d", counts[ident])})
			}
			table.SetFooter([]string{"Nodes", fmt.Sprintf("%d", coll.CountNodes())})
			table.Render()
			return nil
		},
	}
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := common.ReadTextFile(args[0])
			if err != nil {
				return err
			}
			tokens, err := sgf.NewScanner(text).Scan()
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q\n", tok.Pos, tok.Kind, tok.String())
			}
			return nil
		},
	}
}
