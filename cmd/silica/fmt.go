package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"silica/internal/diag"
	"silica/internal/diagfmt"
	"silica/internal/driver"
	"silica/internal/observ"
	"silica/internal/prof"
	"silica/internal/project"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format silica source files",
	Long:  `Fmt rewrites .si files into the canonical style. Directories are walked recursively.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Uint32("width", 0, "layout width in columns (0 = manifest or default)")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().String("ui", "auto", "interactive progress view (auto|on|off)")
	fmtCmd.Flags().Int("jobs", 0, "number of parallel formatting jobs (0 = all CPUs)")
	fmtCmd.Flags().Bool("no-cache", false, "skip the formatted-output disk cache")
	fmtCmd.Flags().Bool("time", false, "print phase timings to stderr")
	fmtCmd.Flags().String("cpuprofile", "", "write a CPU profile to this file")
	fmtCmd.Flags().String("memprofile", "", "write a heap profile to this file")
	fmtCmd.Flags().String("traceprofile", "", "write a runtime trace to this file")
	_ = fmtCmd.Flags().MarkHidden("cpuprofile")
	_ = fmtCmd.Flags().MarkHidden("memprofile")
	_ = fmtCmd.Flags().MarkHidden("traceprofile")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetUint32("width")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	timed, err := cmd.Flags().GetBool("time")
	if err != nil {
		return err
	}
	profOpts, err := readProfOptions(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		Width:          width,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	applyManifest(&opts, noCache)
	if timed {
		opts.Timer = observ.NewTimer()
	}

	session, err := prof.Start(profOpts)
	if err != nil {
		return fmt.Errorf("fmt: start profiling: %w", err)
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "fmt: stop profiling: %v\n", stopErr)
		}
	}()

	useTUI := shouldUseTUI(mode) && !writeToStdout && outputFormat == "text"

	var results []driver.FormatResult
	if useTUI {
		results, err = runFmtWithUI(cmd, args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(cmd, results, &hasErrors)
		} else {
			renderFmtText(cmd, results, check, quiet, &hasErrors, &hasChanges)
		}
	case "json":
		if err := renderFmtJSON(results, check); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func readProfOptions(cmd *cobra.Command) (prof.Options, error) {
	var opts prof.Options
	var err error
	if opts.CPUPath, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return opts, err
	}
	if opts.MemPath, err = cmd.Flags().GetString("memprofile"); err != nil {
		return opts, err
	}
	if opts.TracePath, err = cmd.Flags().GetString("traceprofile"); err != nil {
		return opts, err
	}
	return opts, nil
}

// applyManifest fills width and cache defaults from the nearest silica.toml.
// Explicit flags win; a missing or broken manifest is ignored.
func applyManifest(opts *driver.FormatOptions, noCache bool) {
	manifest, ok, err := project.LoadManifest(".")
	if err != nil || !ok {
		return
	}
	if opts.Width == 0 {
		opts.Width = manifest.Config.Fmt.Width
	}
	if manifest.Config.Fmt.UseCache && !noCache {
		if cache, err := driver.OpenDiskCache("silica"); err == nil {
			opts.Cache = cache
		}
	}
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFmtError(cmd, res)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			reportFmtError(cmd, res)
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(os.Stdout, res.Path)
		} else {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

// reportFmtError prints the failure and, for parse failures, the collected
// diagnostics with source context.
func reportFmtError(cmd *cobra.Command, res driver.FormatResult) {
	fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
	if len(res.Diags) == 0 || res.FileSet == nil {
		return
	}
	bag := diagBagFrom(res)
	diagfmt.Pretty(os.Stderr, bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
	})
}

func diagBagFrom(res driver.FormatResult) *diag.Bag {
	bag := diag.NewBag(len(res.Diags))
	for _, d := range res.Diags {
		bag.Add(d)
	}
	return bag
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
