package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vendorladon/asnval"
)

var (
	outputFormat string
	outputPath   string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an ASN file and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json or csv")
	validateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg := asnval.DefaultConfig()
	if cfgFile != "" {
		cfg, err = asnval.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", cfgFile, err)
		}
	}

	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := asnval.ParseEDI(string(raw))
	if err != nil && !errors.Is(err, asnval.ParseError) {
		return err
	}
	doc.Name = filepath.Base(path)
	if err != nil {
		logger.Warn("input degraded, validating anyway", zap.Error(err))
	}

	report := asnval.NewPipeline(asnval.WithLogger(logger)).Run(doc, cfg)

	out, err := renderReport(report)
	if err != nil {
		return err
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return err
		}
	} else {
		_, _ = cmd.OutOrStdout().Write(out)
	}

	if !report.Summary.IsReady {
		return fmt.Errorf("ASN is not ready: %d error(s)", report.Summary.TotalErrors)
	}
	return nil
}

func renderReport(report *asnval.Report) ([]byte, error) {
	switch outputFormat {
	case "json":
		return report.JSON()
	case "csv":
		return report.CSV()
	case "text":
		return []byte(report.TextSummary()), nil
	default:
		return nil, fmt.Errorf("unknown format %q", outputFormat)
	}
}
