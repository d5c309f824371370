package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nokori",
		Short: "Streaming decoder tools for Content-Length framed message streams",
	}

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newTailCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
