package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"serverlog-analyser/internal/analyzers"
	"serverlog-analyser/internal/app"
	"serverlog-analyser/internal/extractors"
	"serverlog-analyser/internal/ingestors"
	"serverlog-analyser/internal/jobs"
	"serverlog-analyser/internal/models"
	"serverlog-analyser/internal/shared/configs"
	"serverlog-analyser/internal/shared/filestorages"
	"serverlog-analyser/internal/shared/loggers"
	"serverlog-analyser/internal/stores"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
)

const progressLogInterval = 500 * time.Millisecond

type analyzeOptions struct {
	root            *rootOptions
	topIPs          int
	topPaths        int
	topUserAgents   int
	aggregatedLimit int
	timeout         time.Duration
	pretty          bool
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	defaults := configs.Default().Analysis
	opts := &analyzeOptions{root: root}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze one access log and print the result document",
		Example: `  loganalyze analyze access.log
  loganalyze analyze --top-ips 5 --pretty /var/log/nginx/access.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.topIPs, "top-ips", defaults.TopNIPs, "number of client addresses to rank")
	cmd.Flags().IntVar(&opts.topPaths, "top-paths", defaults.TopNPaths, "number of raw paths to rank")
	cmd.Flags().IntVar(&opts.topUserAgents, "top-user-agents", defaults.TopNUserAgents, "number of user-agent families to rank")
	cmd.Flags().IntVar(&opts.aggregatedLimit, "aggregated-limit", defaults.AggregatedLimit, "number of normalized paths to rank")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the analysis after this long (0 disables)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")

	return cmd
}

// analysisConfig starts from the config file, when given, and applies the flags the user set.
func (o *analyzeOptions) analysisConfig(cmd *cobra.Command) (configs.AnalysisConfig, error) {
	analysis := configs.Default().Analysis
	if o.root.configFile != "" {
		cfg, err := configs.LoadConfig(o.root.configFile)
		if err != nil {
			return analysis, err
		}
		analysis = cfg.Analysis
	}

	flags := cmd.Flags()
	if flags.Changed("top-ips") || o.root.configFile == "" {
		analysis.TopNIPs = o.topIPs
	}
	if flags.Changed("top-paths") || o.root.configFile == "" {
		analysis.TopNPaths = o.topPaths
	}
	if flags.Changed("top-user-agents") || o.root.configFile == "" {
		analysis.TopNUserAgents = o.topUserAgents
	}
	if flags.Changed("aggregated-limit") || o.root.configFile == "" {
		analysis.AggregatedLimit = o.aggregatedLimit
	}

	if analysis.TopNIPs < 1 || analysis.TopNPaths < 1 || analysis.TopNUserAgents < 1 || analysis.AggregatedLimit < 1 {
		return analysis, errors.New("display limits must be >= 1")
	}
	return analysis, nil
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions, path string) error {
	analysis, err := opts.analysisConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := loggers.NewWithWriter(opts.root.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.root.logLevel, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	ctx = logger.WithContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	// the job engine reads from storage, so the file is staged in a scratch root
	scratchDir, err := os.MkdirTemp("", "loganalyze-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	storage, err := filestorages.NewFileStorage(scratchDir)
	if err != nil {
		return err
	}

	analyzer := analyzers.NewStreamingAnalyzer(storage, extractors.NewPatternExtractor(), app.LimitsFromConfig(analysis))
	scheduler := jobs.NewScheduler(jobs.NewRegistry(), analyzer, storage, []jobs.TaskHost{jobs.NewInlineHost()}, jobs.SchedulerOptions{
		DeleteUploadsAfterProcessing: true,
	})
	ingestion := ingestors.NewUploadIngestionService(stores.NewUploadStore(storage), scheduler, 0)

	group := conc.NewWaitGroup()
	accepted, err := ingestion.IngestUpload(jobs.WithTaskGroup(ctx, group), ingestors.SourceCLI, filepath.Base(path), file)
	if err != nil {
		group.Wait()
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		group.Wait()
	}()
	snapshot := waitLoggingProgress(ctx, scheduler, accepted.JobID, done)

	return writeOutcome(cmd, snapshot, opts.pretty)
}

func waitLoggingProgress(ctx context.Context, scheduler jobs.Scheduler, jobID string, done <-chan struct{}) *models.JobSnapshot {
	ticker := time.NewTicker(progressLogInterval)
	defer ticker.Stop()

	logger := loggers.Ctx(ctx)
	for {
		select {
		case <-done:
			snapshot, _ := scheduler.Get(ctx, jobID)
			return snapshot
		case <-ticker.C:
			snapshot, svcErr := scheduler.Get(ctx, jobID)
			if svcErr != nil {
				continue
			}
			logger.Info().
				Str(loggers.FieldJobID, jobID).
				Str(loggers.FieldJobStatus, string(snapshot.Status)).
				Int64(loggers.FieldBytesRead, snapshot.BytesRead).
				Int64(loggers.FieldLinesRead, snapshot.LinesParsed).
				Msgf("progress %.1f%%", snapshot.Progress*100)
		}
	}
}

func writeOutcome(cmd *cobra.Command, snapshot *models.JobSnapshot, pretty bool) error {
	if snapshot == nil {
		return errors.New("job disappeared before completion")
	}
	switch snapshot.Status {
	case models.JobDone:
	case models.JobCancelled:
		return errors.New("analysis cancelled")
	default:
		msg := "unknown error"
		if snapshot.Error != nil {
			msg = *snapshot.Error
		}
		return fmt.Errorf("analysis %s: %s", snapshot.Status, msg)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(snapshot.Result)
}
