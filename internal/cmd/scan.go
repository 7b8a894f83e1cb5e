package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	apperrors "github.com/limitlens/limitlens/internal/errors"
	"github.com/limitlens/limitlens/internal/logcheck"
	"github.com/limitlens/limitlens/internal/output"
)

var scanCmd = &cobra.Command{
	Use:   "scan <log-file>...",
	Short: "Report unexpected entries in captured logs",
	Long: `Read zap JSON logs (optionally gzip-compressed) and report every WARN-or-above
entry that is not a known, benign pattern.

The Trusted Advisor premium-subscription warning is always ignored. Endpoint
connectivity warnings are ignored with --allow-endpoint-error. Further
patterns can be listed under scan.suppress in the config file.

Examples:
  # Scan the log of an integration run
  limitlens scan ./run.log

  # Scan every compressed log below a directory
  limitlens scan 'logs/**/*.log.gz'

  # Tolerate unreachable regional endpoints and require exactly two TA polls
  limitlens scan --allow-endpoint-error --polls 2 ./run.log.gz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("allow-endpoint-error", false, "Ignore 'Could not connect to the endpoint URL' warnings")
	scanCmd.Flags().Int("polls", -1, "Expected number of Trusted Advisor polls (-1 to skip the check)")
	scanCmd.Flags().StringP("output", "o", "table", "Output format: table, json, yaml, markdown")

	_ = viper.BindPFlag("scan.allow_endpoint_error", scanCmd.Flags().Lookup("allow-endpoint-error"))
}

// scanOptions controls a scan run.
type scanOptions struct {
	AllowEndpointError bool
	ExpectedPolls      int
	Rules              []logcheck.SuppressionRule
}

// errUnexpectedEntries marks a scan that completed but found problems.
var errUnexpectedEntries = errors.New("unexpected log entries found")

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadedConfig()
	if err != nil {
		return apperrors.WrapConfigInvalid(ctx, err, "failed to load configuration")
	}
	rules, err := cfg.Scan.Rules()
	if err != nil {
		return apperrors.WrapConfigInvalid(ctx, err, "invalid suppression rule")
	}

	allow, err := cmd.Flags().GetBool("allow-endpoint-error")
	if err != nil {
		return err
	}
	polls, err := cmd.Flags().GetInt("polls")
	if err != nil {
		return err
	}
	formatName, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return apperrors.WrapInvalidInput(ctx, err, "invalid output format")
	}

	opts := scanOptions{
		AllowEndpointError: allow || cfg.Scan.AllowEndpointError,
		ExpectedPolls:      polls,
		Rules:              rules,
	}

	paths, err := expandPaths(args)
	if err != nil {
		return apperrors.WrapNotFound(ctx, err, "no log files matched")
	}

	reports, err := scanFiles(paths, opts)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperrors.WrapNotFound(ctx, err, "log file not found")
		}
		return apperrors.WrapDataProcessing(ctx, err, "failed to read log file")
	}

	rendered, err := output.NewFormatter(format).FormatReports(reports)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)

	return checkReports(reports, opts)
}

// expandPaths resolves glob arguments (including ** patterns) to files.
// Plain paths are kept as given so a missing file is reported by the reader.
func expandPaths(args []string) ([]string, error) {
	seen := make(map[string]bool, len(args))
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		matches := []string{arg}
		if strings.ContainsAny(arg, "*?[{") {
			var err error
			matches, err = doublestar.FilepathGlob(arg, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("pattern %q matched no files: %w", arg, fs.ErrNotExist)
			}
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	return paths, nil
}

// scanFiles builds one report per log file, in argument order.
func scanFiles(paths []string, opts scanOptions) ([]*logcheck.Report, error) {
	reports := make([]*logcheck.Report, 0, len(paths))
	for _, path := range paths {
		logFile, err := logcheck.OpenJSON(path)
		if err != nil {
			return nil, err
		}
		helper := logcheck.NewHelper(logFile, logcheck.WithRules(opts.Rules...))
		report := helper.Report(path, opts.AllowEndpointError)

		logInfo("Scanned log file",
			zap.String("path", path),
			zap.Int("entries", report.Total),
			zap.Int("skipped", report.Skipped),
			zap.Int("unexpected", len(report.Unexpected)),
			zap.Int("ta_polls", report.Polls),
		)
		if report.Skipped > 0 {
			logWarn("Skipped lines that are not zap JSON log entries",
				zap.String("path", path),
				zap.Int("skipped", report.Skipped),
			)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// checkReports turns scan findings into the command's error result.
func checkReports(reports []*logcheck.Report, opts scanOptions) error {
	unexpected := 0
	polls := 0
	for _, report := range reports {
		unexpected += len(report.Unexpected)
		polls += report.Polls
	}

	if opts.ExpectedPolls >= 0 && polls != opts.ExpectedPolls {
		return fmt.Errorf("expected %d Trusted Advisor polls, found %d", opts.ExpectedPolls, polls)
	}
	if unexpected > 0 {
		return fmt.Errorf("%w: %d", errUnexpectedEntries, unexpected)
	}
	return nil
}
