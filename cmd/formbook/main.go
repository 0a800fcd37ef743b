// Package main provides the CLI entry point for formbook-go.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/ukaji3/formbook-go/pkg/formbook"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/output"
)

var (
	exportOutput string
	parseOutput  string
	pretty       bool
	lookupsPath  string
	verbose      bool
	submissionID string
	applicant    string
	status       string
	formVersion  string
	devTier      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "formbook",
		Short: "Convert submission request forms to and from Excel workbooks",
		Long: `formbook-go renders a submission request questionnaire (JSON) into an
xlsx workbook with dropdowns and validation rules, and parses edited
workbooks back into JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&lookupsPath, "lookups", "", "YAML file with lookup lists and metadata")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	exportCmd := &cobra.Command{
		Use:   "export [input.json]",
		Short: "Export a questionnaire to an xlsx workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "form.xlsx", "Output workbook path")
	exportCmd.Flags().StringVar(&submissionID, "submission-id", "", "Submission id (default: a new UUID)")
	exportCmd.Flags().StringVar(&applicant, "applicant", "", "Applicant name")
	exportCmd.Flags().StringVar(&status, "status", "", "Submission status")
	exportCmd.Flags().StringVar(&formVersion, "form-version", "", "Questionnaire form version")
	exportCmd.Flags().StringVar(&devTier, "dev-tier", "", "Environment tier label")

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Parse an edited workbook into questionnaire JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(exportCmd, parseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func options() (formbook.Options, error) {
	opts := formbook.DefaultOptions()
	opts.Logger = newLogger()

	if lookupsPath != "" {
		cfg, err := loadConfig(lookupsPath)
		if err != nil {
			return opts, fmt.Errorf("failed to load lookups: %w", err)
		}
		opts.Fetchers = cfg.fetchers()
		opts.Metadata = cfg.Metadata
	}
	return opts, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := options()
	if err != nil {
		return err
	}

	data := models.DefaultQuestionnaire()
	if len(args) == 1 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if err := json.Unmarshal(raw, data); err != nil {
			return fmt.Errorf("invalid questionnaire JSON: %w", err)
		}
	}

	meta := &opts.Metadata
	overrides := []struct {
		flag  string
		field *string
		value string
	}{
		{"submission-id", &meta.SubmissionID, submissionID},
		{"applicant", &meta.ApplicantName, applicant},
		{"status", &meta.Status, status},
		{"form-version", &meta.FormVersion, formVersion},
		{"dev-tier", &meta.DevTier, devTier},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.field = o.value
		}
	}
	if meta.SubmissionID == "" {
		meta.SubmissionID = uuid.New().String()
	}

	buf, err := formbook.Export(context.Background(), data, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(exportOutput, buf, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	opts.Logger.Info("workbook written", "path", exportOutput, "submissionId", meta.SubmissionID)
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts, err := options()
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	res, err := formbook.Parse(context.Background(), buf, opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	jsonData, err := output.ToJSON(output.NewDocument(res.Data, res.Metadata, res.Warnings), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if parseOutput != "" {
		if err := os.WriteFile(parseOutput, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}
