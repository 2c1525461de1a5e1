package main

import (
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	file *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check [query]",
		Short: "Check a query for lexical errors",
		Example: `  jqlex check 'project = "JRA" AND status != Closed'
  cat query.jql | jqlex check`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	checkFlags.file = cmd.Flags().String("file", "", "query file path (default stdin when no query is given)")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := readQuery(args, *checkFlags.file)
	if err != nil {
		return err
	}
	env.log.Debug("checking a query", "length", len(src))

	r := &reporter{
		w:        os.Stdout,
		renderer: env.renderer,
		format:   env.cfg.Format,
	}
	return r.check(src)
}

// readQuery returns the query given as an argument, the content of a file, or the standard input in this order.
func readQuery(args []string, file string) (string, error) {
	if len(args) > 0 {
		if file != "" {
			return "", errors.New("a query and --file cannot be given at the same time")
		}
		return args[0], nil
	}

	var src io.Reader = os.Stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return "", errors.Wrapf(err, "cannot open the query file %v", file)
		}
		defer f.Close()
		src = f
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return "", errors.Wrap(err, "cannot read a query")
	}
	// A file usually ends with a line break, which isn't a part of the query.
	return strings.TrimSuffix(string(b), "\n"), nil
}
