package cmd

import (
	"fmt"

	"github.com/cbscript/cb/internal/samples"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Inspect the registered sample programs",
}

var sampleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered sample by name",
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, name := range samples.Names() {
			sample, _ := samples.Get(name)
			fmt.Printf("%-20s %s\n", sample.Name, sample.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.AddCommand(sampleListCmd)
}
