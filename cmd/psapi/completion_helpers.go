package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// positionalAlwaysFlags completes flag names for commands that take no
// positional arguments, even when the user has not typed a dash yet.
func positionalAlwaysFlags(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	flags := make([]string, 0, 16)

	add := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand != "" {
			flags = append(flags, "-"+f.Shorthand)
		}
		flags = append(flags, "--"+f.Name)
	}

	cmd.NonInheritedFlags().VisitAll(add)
	cmd.InheritedFlags().VisitAll(add)

	return flags, cobra.ShellCompDirectiveNoFileComp
}
