package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "me2comic",
	Short: "me2comic - batch convert comic pages with GraphicsMagick",
	Long: "me2comic batch-converts directories of comic page scans into size-reduced JPEGs,\n" +
		"splitting double-page spreads into halves ordered for right-to-left reading.\n" +
		"All pixel work is delegated to the GraphicsMagick \"gm\" binary.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
