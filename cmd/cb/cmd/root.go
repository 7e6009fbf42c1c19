package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cb",
	Short: "Cb interpreter",
	Long: `cb is a tree-walking interpreter for Cb, a statically-typed systems
scripting language with:
  - Sized integers, structs, enums, unions, and interfaces
  - Generic structs/enums/functions, monomorphized on first use
  - Cooperative async/await with automatic yield insertion
  - Explicit heap allocation (new/delete) with use-after-free detection
  - Deterministic LIFO destructor and defer unwinding`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
