package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dropbox/sqlpuzzle/database/sqlpuzzle"
)

var relationsCmd = &cobra.Command{
	Use:   "relations",
	Short: "List condition relations and the value types they accept",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRelations(cmd.OutOrStdout())
	},
}

var valueCategories = []sqlpuzzle.Category{
	sqlpuzzle.TextCategory,
	sqlpuzzle.BooleanCategory,
	sqlpuzzle.NumericCategory,
	sqlpuzzle.DateTimeCategory,
	sqlpuzzle.SequenceCategory,
	sqlpuzzle.SubqueryCategory,
}

func listRelations(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RELATION\tOPERATOR\tVALUE TYPES")
	for _, r := range sqlpuzzle.Relations() {
		var categories []string
		for _, c := range valueCategories {
			if sqlpuzzle.IsRelationAllowed(r, c) {
				categories = append(categories, c.String())
			}
		}
		_, _ = fmt.Fprintf(
			w,
			"%s\t%s\t%s\n",
			relationName(r),
			r.String(),
			strings.Join(categories, ", "))
	}
	return w.Flush()
}

func relationName(r sqlpuzzle.Relation) string {
	switch r {
	case sqlpuzzle.EQ:
		return "eq"
	case sqlpuzzle.NE:
		return "ne"
	case sqlpuzzle.GT:
		return "gt"
	case sqlpuzzle.GE:
		return "ge"
	case sqlpuzzle.LT:
		return "lt"
	case sqlpuzzle.LE:
		return "le"
	case sqlpuzzle.LIKE:
		return "like"
	case sqlpuzzle.REGEXP:
		return "regexp"
	case sqlpuzzle.IN:
		return "in"
	case sqlpuzzle.NOT_IN:
		return "not_in"
	}
	return "undefined"
}
