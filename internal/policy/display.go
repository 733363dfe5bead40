package policy

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DisplayDocuments prints generated documents in a readable form, one block per bucket
func DisplayDocuments(w io.Writer, buckets []string, docs []Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No policies")
		return
	}

	for i, doc := range docs {
		name := ""
		if i < len(buckets) {
			name = buckets[i]
		}
		color.New(color.FgCyan).Fprintf(w, "Policy %d: %s\n", i+1, name)

		for j, stmt := range doc.Statement {
			effect := color.New(color.FgGreen)
			if stmt.Effect == EffectDeny {
				effect = color.New(color.FgRed)
			}

			fmt.Fprintf(w, "  %d. ", j+1)
			effect.Fprint(w, stmt.Effect)
			fmt.Fprintf(w, " %s\n", strings.Join(stmt.Actions(), ", "))

			if resources := stmt.Resources(); len(resources) > 0 {
				fmt.Fprintf(w, "     on %s\n", strings.Join(resources, ", "))
			}
			if excluded := stmt.NotResources(); len(excluded) > 0 {
				fmt.Fprintf(w, "     on everything except %s\n", strings.Join(excluded, ", "))
			}
		}
		fmt.Fprintln(w)
	}
}
