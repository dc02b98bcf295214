package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dropbox/sqlpuzzle/errors"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a fragment document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "opening %s", args[0])
			}
			defer func() { _ = f.Close() }()
			in = f
		}
		return render(cfg, in, cmd.OutOrStdout())
	},
}

// Parses, builds and renders the document read from in.
func render(cfg *Config, in io.Reader, out io.Writer) error {
	r, err := cfg.Renderer()
	if err != nil {
		return err
	}

	doc, err := ParseDocument(in)
	if err != nil {
		return err
	}
	fragments, err := doc.Build()
	if err != nil {
		return err
	}

	if cfg.Statement == statementFragments {
		lines, err := fragments.Clauses(r)
		if err != nil {
			return err
		}
		for _, line := range lines {
			_, _ = fmt.Fprintln(out, line)
		}
		return nil
	}

	sql, err := fragments.Select(r)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, sql)
	return nil
}
