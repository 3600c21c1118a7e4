// Package main provides the sfx CLI entry point.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/avkarasev/suffixkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sfx",
		Short: "Build and query suffix-array and suffix-tree indexes over text files",
		Long: `sfx indexes a sentinel-terminated file with a suffix array or a suffix tree
and answers substring queries against it.

The indexed file must end with a single 0x00 byte that appears nowhere
else in it; use --append-sentinel to have sfx add one for you.`,
	}

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(findCmd())
	rootCmd.AddCommand(dotCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildCmd round-trips a file through both index types as a sanity/smoke
// check, logging sizes the way a thin CLI wrapper would (the library
// packages themselves never log).
func buildCmd() *cobra.Command {
	var appendSentinel bool

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build a suffix array and suffix tree over a file and report basic stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := loadText(args[0], appendSentinel)
			if err != nil {
				return err
			}

			sa, err := suffixkit.BuildSuffixArray[uint32](text)
			if err != nil {
				return fmt.Errorf("building suffix array: %w", err)
			}
			log.Printf("suffix array: %d suffixes", sa.Len())

			tree, err := suffixkit.BuildTree(text)
			if err != nil {
				return fmt.Errorf("building suffix tree: %w", err)
			}
			log.Printf("suffix tree: %d leaves", len(tree.FindAll(nil)))

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d bytes\n", len(text))
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendSentinel, "append-sentinel", false, "append a 0x00 sentinel to the file before indexing")
	return cmd
}

func findCmd() *cobra.Command {
	var (
		pattern        string
		all            bool
		useTree        bool
		appendSentinel bool
		textOrder      bool
	)

	cmd := &cobra.Command{
		Use:   "find <file>",
		Short: "Report occurrences of a pattern in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := loadText(args[0], appendSentinel)
			if err != nil {
				return err
			}

			if useTree {
				tree, err := suffixkit.BuildTree(text)
				if err != nil {
					return err
				}
				return reportTree(cmd, tree, []byte(pattern), all)
			}

			sa, err := suffixkit.BuildSuffixArray[uint32](text)
			if err != nil {
				return err
			}
			return reportArray(cmd, sa, []byte(pattern), all, textOrder)
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "pattern to search for (required)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "report every occurrence instead of just one")
	cmd.Flags().BoolVar(&useTree, "tree", false, "search with a suffix tree instead of a suffix array")
	cmd.Flags().BoolVar(&textOrder, "text-order", false, "sort --all results by text position instead of SA order")
	cmd.Flags().BoolVar(&appendSentinel, "append-sentinel", false, "append a 0x00 sentinel to the file before indexing")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

func reportArray(cmd *cobra.Command, sa *suffixkit.SuffixArray[uint32], pattern []byte, all, textOrder bool) error {
	if !all {
		pos, ok := sa.Find(pattern)
		if !ok {
			return fmt.Errorf("pattern not found")
		}
		fmt.Fprintln(cmd.OutOrStdout(), pos)
		return nil
	}
	var hits []uint32
	if textOrder {
		hits = sa.FindAllTextOrder(pattern)
	} else {
		hits = sa.FindAll(pattern)
	}
	if len(hits) == 0 {
		return fmt.Errorf("pattern not found")
	}
	for _, p := range hits {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func reportTree(cmd *cobra.Command, tree *suffixkit.Tree, pattern []byte, all bool) error {
	if !all {
		pos, ok := tree.Find(pattern)
		if !ok {
			return fmt.Errorf("pattern not found")
		}
		fmt.Fprintln(cmd.OutOrStdout(), pos)
		return nil
	}
	hits := tree.FindAll(pattern)
	if len(hits) == 0 {
		return fmt.Errorf("pattern not found")
	}
	for _, p := range hits {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func dotCmd() *cobra.Command {
	var appendSentinel bool

	cmd := &cobra.Command{
		Use:   "dot <file>",
		Short: "Render a file's suffix tree as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := loadText(args[0], appendSentinel)
			if err != nil {
				return err
			}
			tree, err := suffixkit.BuildTree(text)
			if err != nil {
				return err
			}
			return tree.DOT(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&appendSentinel, "append-sentinel", false, "append a 0x00 sentinel to the file before indexing")
	return cmd
}

func loadText(path string, appendSentinel bool) ([]byte, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if appendSentinel {
		text = append(text, 0)
	}
	return text, nil
}
