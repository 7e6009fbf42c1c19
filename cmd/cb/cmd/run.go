package cmd

import (
	"fmt"
	"os"

	"github.com/cbscript/cb/internal/interp"
	"github.com/cbscript/cb/internal/samples"
	"github.com/spf13/cobra"
)

var dumpAST bool

var runCmd = &cobra.Command{
	Use:   "run <sample>",
	Short: "Run a registered sample program",
	Long: `Execute one of the programs registered in internal/samples.

Examples:
  # Run the hello-world sample
  cb run hello

  # Run with an AST dump (for debugging)
  cb run --dump-ast destructors

  # List the available samples
  cb sample list`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the sample's AST before executing it")
}

func runSample(_ *cobra.Command, args []string) error {
	name := args[0]
	sample, ok := samples.Get(name)
	if !ok {
		return fmt.Errorf("unknown sample %q (run \"cb sample list\" to see available names)", name)
	}

	if dumpAST {
		fmt.Println("AST:")
		for _, decl := range sample.Program.Declarations {
			fmt.Println(decl.String())
		}
		fmt.Println()
	}

	evaluator := interp.NewEvaluator(os.Stdout)
	exitCode, diags := evaluator.RunProgram(sample.Program)
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
