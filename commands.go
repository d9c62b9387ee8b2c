package ort

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Concurrency limits for the pull command.
const (
	// DefaultConcurrency is the default number of concurrent pulls.
	DefaultConcurrency = 4

	// MaxConcurrency is the maximum allowed concurrent pulls.
	MaxConcurrency = 16
)

// Output styles. Colors are dropped when stdout is not a terminal.
var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewCommand creates a Cobra command tree for fetching model artifacts.
// The returned command can be used as a root command or added to a parent
// CLI.
//
// Commands provided:
//   - models fetch <url> <dest>
//   - models pull <url>... [--dir] [--concurrency]
//   - models path
//
// Global flags: --json, --quiet, --verbose, --metrics
func NewCommand(cfg Config, opts ...Option) *cobra.Command {
	var (
		jsonOutput  bool
		quiet       bool
		verbose     bool
		dumpMetrics bool
	)

	registry := prometheus.NewRegistry()

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Fetch ONNX model artifacts",
		Long:  "Download model artifacts and verify them against their declared size.",
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !dumpMetrics {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), registry)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "Print collected metrics to stderr when done")

	// The fetcher is built per invocation so flags are honored.
	newFetcher := func(progress func(FetchProgress)) *Fetcher {
		fopts := append([]Option{}, opts...)
		fopts = append(fopts, WithRegisterer(registry))
		if progress != nil {
			fopts = append(fopts, WithProgress(progress))
		}
		return NewFetcher(fopts...)
	}

	cmd.AddCommand(fetchCmd(newFetcher, &quiet, &verbose))
	cmd.AddCommand(pullCmd(cfg, newFetcher, &jsonOutput, &quiet, &verbose))
	cmd.AddCommand(pathCmd(cfg))

	return cmd
}

func fetchCmd(newFetcher func(func(FetchProgress)) *Fetcher, quiet, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url> <dest>",
		Short: "Download a model artifact to a file",
		Long:  "Download a model artifact to the given path. A partial file left after a failed download is unusable.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var progress func(FetchProgress)
			var startTime time.Time
			if !*quiet {
				startTime = time.Now()
				fmt.Fprint(out, "\x1b[?25l")
				defer fmt.Fprint(out, "\x1b[?25h")
				progress = func(p FetchProgress) {
					renderProgress(out, p, time.Since(startTime), *verbose)
				}
			}

			err := newFetcher(progress).Fetch(cmd.Context(), args[0], args[1])
			if !*quiet {
				fmt.Fprintln(out)
			}
			if err != nil {
				return err
			}

			if !*quiet {
				fmt.Fprintf(out, "%s %s\n", successStyle.Render("Saved"), args[1])
			}
			return nil
		},
	}
}

func pullCmd(cfg Config, newFetcher func(func(FetchProgress)) *Fetcher, jsonOutput, quiet, verbose *bool) *cobra.Command {
	var (
		dir         string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "pull <url>...",
		Short: "Materialize models in the cache directory",
		Long:  "Download models into the cache directory unless already present, and print their paths.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if dir == "" {
				var err error
				dir, err = ResolveCacheDir(cfg)
				if err != nil {
					return err
				}
			}

			var outMu sync.Mutex
			var progress func(FetchProgress)
			if *verbose && !*quiet {
				progress = func(p FetchProgress) {
					outMu.Lock()
					defer outMu.Unlock()
					fmt.Fprintf(out, "%s %s %s/%s\n", dimStyle.Render(p.AttemptID), p.URL, formatSize(p.BytesWritten), formatSize(p.BytesTotal))
				}
			}
			fetcher := newFetcher(progress)

			type pullResult struct {
				URL  string `json:"url"`
				Path string `json:"path"`
			}
			results := make([]pullResult, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(clampConcurrency(concurrency))
			for i, locator := range args {
				g.Go(func() error {
					path, err := fetcher.Materialize(ctx, locator, dir)
					if err != nil {
						return err
					}
					results[i] = pullResult{URL: locator, Path: path}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if *jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				if *quiet {
					fmt.Fprintln(out, r.Path)
				} else {
					fmt.Fprintf(out, "%s %s\n", dimStyle.Render(r.URL+" ->"), r.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to store models in (default: cache directory)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", DefaultConcurrency, "Number of concurrent downloads")
	return cmd
}

func pathCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the model cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ResolveCacheDir(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// clampConcurrency clamps n to the range [1, MaxConcurrency].
func clampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}

// writeMetrics writes every gathered metric family in the Prometheus text
// format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

var sizeUnits = [...]string{"KB", "MB", "GB", "TB"}

// formatSize renders n bytes in binary units, e.g. "1.50 MB".
func formatSize(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[unit])
}

// renderProgress redraws the progress line for a fetch in place:
//
//	model.onnx [############............]  50% 512 B/1.00 KB 256 B/s 2s
//
// In verbose mode the fetch's attempt ID is appended.
func renderProgress(w io.Writer, p FetchProgress, elapsed time.Duration, verbose bool) {
	const barWidth = 24

	var frac float64
	if p.BytesTotal > 0 {
		frac = min(float64(p.BytesWritten)/float64(p.BytesTotal), 1)
	}
	filled := int(frac * barWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "\r\x1b[K%s [%s%s] %3.0f%% %s/%s",
		filepath.Base(p.Dest),
		strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled),
		frac*100, formatSize(p.BytesWritten), formatSize(p.BytesTotal))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(&b, " %s/s", formatSize(uint64(float64(p.BytesWritten)/secs)))
	}
	fmt.Fprintf(&b, " %s", elapsed.Truncate(time.Second))
	if verbose {
		fmt.Fprintf(&b, " attempt=%s", p.AttemptID)
	}
	io.WriteString(w, b.String())
}
