package aws

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// DisplayApplyResult prints a short human summary of an applied policy
func DisplayApplyResult(w io.Writer, name string, result *ApplyResult) {
	switch {
	case result.Created:
		color.New(color.FgGreen).Fprintf(w, "Created IAM policy %s\n", name)
	case result.Updated:
		color.New(color.FgYellow).Fprintf(w, "Updated IAM policy %s\n", name)
	default:
		color.New(color.FgCyan).Fprintf(w, "IAM policy %s already up to date\n", name)
	}

	fmt.Fprintf(w, "ARN: %s\n", result.PolicyARN)
}
