package main

import (
	"os"

	"github.com/spf13/cobra"
)

var tokensFlags = struct {
	file *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tokens [query]",
		Short:   "Print the tokens of a query",
		Example: `  jqlex tokens 'assignee in (alice, bob)'`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokens,
	}
	tokensFlags.file = cmd.Flags().String("file", "", "query file path (default stdin when no query is given)")
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readQuery(args, *tokensFlags.file)
	if err != nil {
		return err
	}

	r := &reporter{
		w:        os.Stdout,
		renderer: env.renderer,
		format:   env.cfg.Format,
	}
	return r.tokens(src)
}
