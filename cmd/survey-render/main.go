// Command survey-render renders one survey report to disk without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	v1 "survey-portal/survey-portal-backend/api/v1"
	"survey-portal/survey-portal-backend/internal/config"
	"survey-portal/survey-portal-backend/internal/survey"
	"survey-portal/survey-portal-backend/internal/survey/export"
)

const (
	exitSuccess = 0
	exitGeneral = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

type renderFlags struct {
	config  string
	form    string
	assets  string
	images  []string
	titles  []string
	out     string
	verbose bool
}

func main() {
	os.Exit(exitCode(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		return exitGeneral
	}
}

func parseFlags(args []string, stderr io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("survey-render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.config, "config", "c", "", "JSON config file")
	fs.StringVarP(&f.form, "form", "f", "", "survey form JSON file (required)")
	fs.StringVarP(&f.assets, "assets", "a", "", "directory holding the letterhead and signature images")
	fs.StringArrayVarP(&f.images, "image", "i", nil, "photo to attach, repeatable")
	fs.StringArrayVarP(&f.titles, "title", "t", nil, "caption for the photo at the same position, repeatable")
	fs.StringVarP(&f.out, "out", "o", ".", "output directory")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if f.form == "" {
		return nil, fmt.Errorf("%w: --form is required", errUsage)
	}
	if len(f.titles) > len(f.images) {
		return nil, fmt.Errorf("%w: %d titles given for %d images", errUsage, len(f.titles), len(f.images))
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Assets.CacheTTL = 0
	if flags.assets != "" {
		cfg.Assets.Source = config.SourceDir
		cfg.Assets.Dir = flags.assets
	}

	logger := zap.NewNop()
	if flags.verbose {
		logger, err = config.LoggingConfig{Level: "debug", Development: true}.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	req, err := loadRequest(flags)
	if err != nil {
		return err
	}

	source, err := v1.NewAssetSource(ctx, cfg.Assets)
	if err != nil {
		return err
	}
	defer v1.CloseAssetSource(source)

	doc, err := v1.NewSurveyService(source, cfg, logger).GenerateReport(ctx, req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(flags.out, doc.FileName)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	for _, w := range doc.Warnings {
		fmt.Fprintln(stderr, "warning:", w)
	}
	fmt.Fprintf(stdout, "%s (%d pages)\n", path, doc.Pages)
	return nil
}

func loadRequest(flags *renderFlags) (survey.ReportRequest, error) {
	var req survey.ReportRequest

	data, err := os.ReadFile(flags.form)
	if err != nil {
		return req, fmt.Errorf("failed to read form: %w", err)
	}
	if err := json.Unmarshal(data, &req.Form); err != nil {
		return req, fmt.Errorf("failed to parse form %s: %w", flags.form, err)
	}

	for i, p := range flags.images {
		img, err := os.ReadFile(p)
		if err != nil {
			return req, fmt.Errorf("failed to read image: %w", err)
		}
		title := ""
		if i < len(flags.titles) {
			title = flags.titles[i]
		}
		req.Images = append(req.Images, export.AttachmentSource{Name: filepath.Base(p), Title: title, Data: img})
	}
	return req, nil
}
