// Command dummylsp is an illustrative language server: it wires
// lsprpc's Endpoint to a no-op backend over stdio. It exists to give
// the core a real, runnable entry point - the outer program that
// opens pipes and spawns the endpoint needs a concrete shape to
// exercise it end to end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dummylsp",
	Short: "Illustrative LSP server built on lsprpc",
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
