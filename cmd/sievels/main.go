package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sievels/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sievels",
	Short: "Sieve language server and script checker",
	Long:  `sievels is a language server for Sieve email filtering scripts (RFC 5228) with batch checking tools`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum diagnostics reported per script")

	cobra.OnInitialize(setupColor)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupColor() {
	mode, err := rootCmd.PersistentFlags().GetString("color")
	if err != nil {
		return
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
