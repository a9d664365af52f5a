// Package version reports build metadata and provides the version command.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Overridden with -ldflags -X at release time. When left unset, the commit and date
// come from the VCS stamp the go tool embeds.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

type Info struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	GitCommit string   `json:"commit" yaml:"commit"`
	BuildDate string   `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	Modified  bool     `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string   `json:"go" yaml:"go"`
	Platform  string   `json:"platform" yaml:"platform"`
	BuildDeps []string `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// NewInfo describes the running binary. withDeps adds every module it was built with.
func NewInfo(name string, withDeps bool) Info {
	info := Info{
		Name:      name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info.withFallbacks()
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	if withDeps {
		for _, dep := range bi.Deps {
			if dep.Replace != nil {
				dep = dep.Replace
			}
			info.BuildDeps = append(info.BuildDeps, dep.Path+"@"+dep.Version)
		}
		slices.Sort(info.BuildDeps)
	}
	return info.withFallbacks()
}

func (i Info) withFallbacks() Info {
	if i.GitCommit == "" {
		i.GitCommit = "unknown"
	}
	return i
}

func (i Info) String() string {
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}
	return fmt.Sprintf("%s version %s\n  commit: %s\n  built:  %s\n  go:     %s %s\n",
		i.Name, i.Version, commit, orUnknown(i.BuildDate), i.GoVersion, i.Platform)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func (i Info) write(w io.Writer, long, asJSON bool) error {
	switch {
	case asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(i)
	case long:
		return yaml.NewEncoder(w).Encode(i)
	default:
		_, err := io.WriteString(w, i.String())
		return err
	}
}

// NewCmd returns the version command for the named binary.
func NewCmd(name string) *cobra.Command {
	var long, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewInfo(name, long).write(cmd.OutOrStdout(), long, asJSON)
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Include the modules the binary was built with (YAML)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
