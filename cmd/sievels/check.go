package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"sievels/internal/check"
	"sievels/internal/diag"
	"sievels/internal/rope"
)

var checkCmd = &cobra.Command{
	Use:          "check [flags] <file.sieve|directory>",
	Short:        "Check Sieve scripts for syntax and semantic issues",
	Long:         `Check a script or every *.sieve file within a directory and report diagnostics`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse analysis results for unchanged files")
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	codeColor    = color.New(color.FgCyan)
	excerptColor = color.New(color.Faint)
)

const maxExcerptWidth = 120

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (want pretty or json)", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	startDir := target
	if !info.IsDir() {
		startDir = "."
	}
	cfg, err := loadSettings(startDir)
	if err != nil {
		return err
	}
	// The flag beats the manifest only when given explicitly.
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") && maxDiagnostics > 0 {
		cfg.MaxErrors = maxDiagnostics
	}

	opts := check.Options{Settings: cfg, Jobs: jobs}
	if useCache {
		cache, err := check.OpenDiskCache("sievels")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	var results []check.FileResult
	if info.IsDir() {
		results, err = check.Dir(cmd.Context(), target, opts)
	} else {
		results, err = check.Files(cmd.Context(), []string{target}, opts)
	}
	if err != nil {
		return err
	}

	failed := false
	for _, res := range results {
		if res.HasErrors() {
			failed = true
		}
	}

	switch format {
	case "json":
		if err := writeJSONReport(results); err != nil {
			return err
		}
	default:
		if err := writePrettyReport(results); err != nil {
			return err
		}
	}

	if failed {
		// Suppress cobra usage output; diagnostics are already printed.
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

type jsonReportEntry struct {
	Path        string            `json:"path"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func writeJSONReport(results []check.FileResult) error {
	report := make([]jsonReportEntry, 0, len(results))
	for _, res := range results {
		diags := res.Diagnostics
		if diags == nil {
			diags = []diag.Diagnostic{}
		}
		report = append(report, jsonReportEntry{Path: res.Path, Diagnostics: diags})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writePrettyReport(results []check.FileResult) error {
	total := 0
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		total += len(res.Diagnostics)
		content, err := os.ReadFile(res.Path)
		if err != nil {
			return err
		}
		text := rope.FromString(string(content))
		for _, d := range res.Diagnostics {
			printDiagnostic(res.Path, d, text)
		}
	}
	if total == 0 {
		fmt.Printf("checked %d script(s), no issues\n", len(results))
	} else {
		fmt.Printf("checked %d script(s), %d issue(s)\n", len(results), total)
	}
	return nil
}

func printDiagnostic(path string, d diag.Diagnostic, text rope.Rope) {
	label := warningLabel.Sprint("WARNING")
	if d.Severity == diag.SevError {
		label = errorLabel.Sprint("ERROR")
	}
	fmt.Printf("%s:%d:%d: %s %s: %s\n",
		path,
		d.Range.Start.Line+1,
		d.Range.Start.Character+1,
		label,
		codeColor.Sprint(d.Code),
		d.Message,
	)

	line, ok := text.Line(d.Range.Start.Line)
	if !ok {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}

	excerpt := runewidth.Truncate(line, maxExcerptWidth, "...")
	fmt.Printf("    %s\n", excerptColor.Sprint(excerpt))

	// The diagnostic column counts UTF-16 units; convert through the line
	// text so the caret lands right under wide runes too.
	lineText := rope.FromString(line)
	startByte := lineText.OffsetForPosition(0, d.Range.Start.Character)
	prefixWidth := runewidth.StringWidth(line[:startByte])
	if prefixWidth >= maxExcerptWidth {
		return
	}
	fmt.Printf("    %s^\n", strings.Repeat(" ", prefixWidth))
}
