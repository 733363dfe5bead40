/*
 This file has implementation of the main banner for the tool. It is used in cmd/root.go
*/
package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const bannerArt = `
  ___            _  _     _                 
 / _ \ _ __  ___| || |___| |_ __  ___ _ _ ___
| (_) | '_ \(_-<| __ / -_) | '_ \/ -_) '_(_-<
 \___/| .__//__/|_||_\___|_| .__/\___|_| /__/
      |_|                  |_|               
`

// DisplayBanner writes the tool banner to w
func DisplayBanner(w io.Writer) {
	color.New(color.FgMagenta).Fprintln(w, strings.Trim(bannerArt, "\n"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Playbook helpers: bucket policies, facts and filters")
	fmt.Fprintln(w, "----------------------------------------------------")
}
