package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags makes every flag overridable through an OPSHELPERS_* environment variable
func bindFlags(flags ...*pflag.Flag) {
	for _, flag := range flags {
		if err := viper.BindPFlag(flag.Name, flag); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
		}
	}
}
