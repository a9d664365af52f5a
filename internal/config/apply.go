package config

import "github.com/spf13/cobra"

// ApplyFlag overrides v with flagValue if the flag was explicitly set on the command
// line. Flags left at their default never override file or environment values, which
// keeps a boolean false default from masking a configured true.
func ApplyFlag[T any](cmd *cobra.Command, flagName string, v *Value[T], flagValue T) {
	f := cmd.Flags().Lookup(flagName)
	if f == nil || !f.Changed {
		return
	}
	v.Set(flagValue, SourceFlag)
}
