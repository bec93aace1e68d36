package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var errBadLine = errors.New("cannot parse command line")

func shellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively, keeping appointment changes in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runShell executes one command per line until EOF or "exit".
func runShell(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "docspot> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		args, err := split(sc.Text())
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		// cobra keeps parsed flag values on the command, so build a new tree per line
		root := rootCmd(a)
		root.SetArgs(args)
		root.SetIn(in)
		root.SetOut(out)
		root.SetErr(out)
		if err := root.ExecuteContext(ctx); err != nil {
			a.log.WithError(err).Debug("shell command failed")
		}
	}
}

// split breaks a line into words with POSIX shell quoting and escapes.
func split(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadLine, err)
	}
	return words, nil
}
