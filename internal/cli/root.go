// Package cli implements the waypost command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g. "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion records the version information displayed by --version.
// Called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the waypost CLI and returns an error if any command
// fails.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:          "waypost",
		Short:        "waypost generates printable direction-sign posts",
		Long: `waypost turns a list of places into 3D-printable STL files: a
segmented sign post with keyed mounting flats, one arrow-shaped sign
plate per destination, and a compass base pointing the whole assembly
north.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(fmt.Sprintf("waypost %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.AddCommand(newGenerateCmd())

	return root.ExecuteContext(ctx)
}
