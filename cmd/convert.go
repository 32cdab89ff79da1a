package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/DawnLiExplorer/Me2Comic/internal/magick"
	"github.com/DawnLiExplorer/Me2Comic/internal/processor"
	"github.com/DawnLiExplorer/Me2Comic/internal/tui"
)

var (
	convertOutputDir string
	convertThreshold int
	convertHeight    int
	convertQuality   int
	convertJobs      int
	convertBatchSize string
	convertGrayscale bool
	convertSharpen   []float64
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input-dir>",
	Short: "Convert every subdirectory of comic pages under a directory",
	Long: "Each immediate subdirectory of <input-dir> is converted into a mirror\n" +
		"subdirectory of the output directory. Pages wider than the split threshold\n" +
		"become two files, right half first (-1), then left (-2).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]

		gmPath, err := magick.Locate()
		if err != nil {
			return err
		}
		version, err := magick.Verify(gmPath)
		if err != nil {
			return err
		}

		batchSize, warn := processor.ValidateBatchSize(convertBatchSize)

		sharpen, err := sharpenFromFlag(convertSharpen)
		if err != nil {
			return err
		}

		params := processor.Params{
			WidthThreshold: convertThreshold,
			ResizeHeight:   convertHeight,
			Quality:        convertQuality,
			Concurrency:    convertJobs,
			BatchSize:      batchSize,
			Grayscale:      convertGrayscale,
			Sharpen:        sharpen,
		}
		if err := params.Validate(); err != nil {
			return err
		}

		outputDir := convertOutputDir
		if outputDir == "" {
			outputDir = "converted"
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, headerDimStyle.Render(version))
		fmt.Fprintln(os.Stdout, headerDimStyle.Render(fmt.Sprintf(
			"split >= %dpx | height %dpx | quality %d | jobs %d | batch %d",
			params.WidthThreshold, params.ResizeHeight, params.Quality,
			params.Concurrency, params.BatchSize)))
		if params.Grayscale {
			fmt.Fprintln(os.Stdout, headerDimStyle.Render("colorspace: gray"))
		}
		if params.Sharpen.Amount > 0 {
			s := params.Sharpen
			fmt.Fprintln(os.Stdout, headerDimStyle.Render(fmt.Sprintf(
				"unsharp: %gx%g+%g+%g", s.Radius, s.Sigma, s.Amount, s.Threshold)))
		}
		if warn != "" {
			fmt.Fprintln(os.Stdout, headerWarnStyle.Render(warn))
		}

		runner := processor.NewRunner(magick.NewTool(gmPath), params)

		updates := make(chan processor.ProgressUpdate, 64)
		model := tui.NewModel(updates, runner.Cancel)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		// SIGINT delivered outside the TUI (no TTY) also cancels the run.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)
		go func() {
			if _, ok := <-sigCh; ok {
				runner.Cancel()
			}
		}()

		report, err := runner.Run(context.Background(), inputDir, outputDir, updates)
		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		status := "completed"
		if report.Cancelled {
			status = "cancelled"
		}
		rows := []tui.SummaryRow{
			{Label: "Status", Value: status},
			{Label: "Pages converted", Value: fmt.Sprintf("%d", report.Processed)},
			{Label: "Pages failed", Value: fmt.Sprintf("%d", len(report.Failed))},
			{Label: "Elapsed", Value: report.Elapsed.Round(10 * time.Millisecond).String()},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		if shown, overflow := report.FailedDisplay(); len(shown) > 0 {
			fmt.Fprintln(os.Stdout, tui.RenderFailures(shown, overflow))
		}

		if outPath, err := filepath.Abs(outputDir); err == nil {
			fmt.Fprintf(os.Stdout, "Output written to: %s\n", outPath)
		}
		return nil
	},
}

// sharpenFromFlag converts the --unsharp radius,sigma,amount,threshold
// quadruple into a Sharpen. An empty flag leaves sharpening off.
func sharpenFromFlag(values []float64) (magick.Sharpen, error) {
	switch len(values) {
	case 0:
		return magick.Sharpen{}, nil
	case 4:
		return magick.Sharpen{
			Radius:    values[0],
			Sigma:     values[1],
			Amount:    values[2],
			Threshold: values[3],
		}, nil
	default:
		return magick.Sharpen{}, fmt.Errorf("--unsharp needs 4 comma-separated values (radius,sigma,amount,threshold), got %d", len(values))
	}
}

var (
	headerDimStyle  = lipgloss.NewStyle().Foreground(tui.ColorDim)
	headerWarnStyle = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	convertCmd.Flags().StringVarP(&convertOutputDir, "output", "o", "", "output directory (default \"converted\")")
	convertCmd.Flags().IntVarP(&convertThreshold, "split-width", "s", 3000, "split pages at least this wide into two halves")
	convertCmd.Flags().IntVar(&convertHeight, "height", 1920, "output height in pixels")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 85, "JPEG quality (1-100)")
	convertCmd.Flags().IntVarP(&convertJobs, "jobs", "j", 2, "simultaneous gm processes (1-6)")
	convertCmd.Flags().StringVar(&convertBatchSize, "batch-size", "40", "pages per gm batch process (1-1000)")
	convertCmd.Flags().BoolVar(&convertGrayscale, "grayscale", false, "convert output to grayscale")
	convertCmd.Flags().Float64SliceVar(&convertSharpen, "unsharp", nil, "unsharp mask as radius,sigma,amount,threshold")

	rootCmd.AddCommand(convertCmd)
}
