package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medical-sentiment/internal/analysis"
	"medical-sentiment/internal/platform/logging"
	"medical-sentiment/internal/report"
)

var (
	format    string
	pdfPath   string
	fontPaths []string
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "analyze [transcript-file]",
	Short: "Classify patient sentiment and intent in a consultation transcript",
	Long: `Reads a transcript from the given file, or from stdin when no file is
given, and classifies every "Patient:" line by sentiment and intent.

Example:
  analyze visit.txt --format text --pdf visit.pdf`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level, "console")
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAnalyze,
}

func init() {
	rootCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or text")
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "", "also write a PDF report to this path")
	rootCmd.Flags().StringSliceVar(&fontPaths, "font", nil, "TTF font(s) for the PDF report")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	svc := analysis.NewService(logger, nil, nil, report.NewService(logger, fontPaths, nil, 0))
	ctx := context.Background()

	result := svc.Analyze(ctx, string(data))
	if err := writeResult(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if pdfPath == "" {
		return nil
	}
	rep, err := svc.RenderReport(ctx, string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(pdfPath, rep.PDF, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", zap.String("path", pdfPath), zap.Stringer("report_id", rep.ID))
	return nil
}

func writeResult(w io.Writer, format string, result analysis.ConversationAnalysis) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "OVERALL\t%s\t%s\n", result.Overall.Sentiment, result.Overall.Intent)
		for i, u := range result.Utterances {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, u.Analysis.Sentiment, u.Analysis.Intent, u.Utterance)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
