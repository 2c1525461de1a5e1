package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/config"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Check queries interactively",
		Long: `repl checks every line you enter as a query.
Enter :tokens to switch between checking and printing tokens, and :quit to exit.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          env.cfg.REPL.Prompt,
		HistoryFile:     config.ExpandHome(env.cfg.REPL.HistoryFile),
		HistoryLimit:    env.cfg.REPL.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return errors.Wrap(err, "cannot initialize readline")
	}
	defer func() {
		if err := rl.Close(); err != nil {
			env.log.Warn("failed to close readline", "error", err)
		}
	}()

	r := &reporter{
		w:        rl.Stdout(),
		renderer: env.renderer,
		format:   env.cfg.Format,
	}
	return repl(rl, r)
}

type lineReader interface {
	Readline() (string, error)
}

func repl(rl lineReader, r *reporter) error {
	showTokens := false
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "read error")
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":tokens":
			showTokens = !showTokens
			fmt.Fprintf(r.w, "printing tokens: %v\n", showTokens)
			continue
		}

		if showTokens {
			err = r.tokens(line)
		} else {
			err = r.check(line)
		}
		if err != nil && !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
