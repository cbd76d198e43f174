// Command vellum runs a one-shot check over a set of files, printing
// diagnostics to stderr and exiting non-zero if any were found.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/config"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/pipeline"
	"github.com/vellum-lang/vellum/internal/symtab"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vellum",
	Short: "One-shot static checker",
}

var checkCmd = &cobra.Command{
	Use:   "check [globs...]",
	Short: "Check files matching the given globs (or the config file's inputFileNames)",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&configPath, "config", "vellum.yaml", "project config file")
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	files := args
	// Payload files (bundled, read-only definitions) are config-driven
	// regardless of whether the caller named explicit globs on the command
	// line, so the config file is always consulted for them.
	var payloadFiles []string
	cfg, err := config.Load(configPath)
	switch {
	case err == nil:
		payloadFiles, err = config.ExpandPayloadFileNames(cfg)
		if err != nil {
			return fmt.Errorf("vellum: %w", err)
		}
		if len(files) == 0 {
			files, err = config.ExpandInputFileNames(cfg)
			if err != nil {
				return err
			}
		}
	case len(files) == 0:
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "vellum: no input files")
		return nil
	}

	gs := symtab.New()
	var fileIDs []ast.FileID
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("vellum: %w", err)
		}
		fileIDs = append(fileIDs, gs.EnterFile(path, string(src), symtab.FileNormal))
	}
	for _, path := range payloadFiles {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("vellum: payload %s: %w", path, err)
		}
		fileIDs = append(fileIDs, gs.EnterFile(path, string(src), symtab.FilePayload))
	}

	ctx := context.Background()
	p := pipeline.NewDefault()

	trees, err := p.Index(ctx, gs, fileIDs)
	if err != nil {
		return fmt.Errorf("vellum: index: %w", err)
	}
	resolved, err := p.Resolve(ctx, gs, trees)
	if err != nil {
		return fmt.Errorf("vellum: resolve: %w", err)
	}
	if err := p.Typecheck(ctx, gs, resolved); err != nil {
		return fmt.Errorf("vellum: typecheck: %w", err)
	}

	diags := gs.DrainErrors()
	formatter := diag.NewFormatter(os.Stderr)
	formatter.FormatAll(diags, gs)

	if len(diags) > 0 {
		os.Exit(1)
	}
	return nil
}
