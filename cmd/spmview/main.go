package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"spmview/internal/logger"
	"spmview/internal/models"
	"spmview/pkg/config"
	"spmview/pkg/pipeline"
	"spmview/pkg/statistics"
	"spmview/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputs := flag.String("input", "", "Comma-separated list of scan images to process")
	outputPath := flag.String("output", "processed.png", "Output image (or directory when several inputs are given)")
	configPath := flag.String("config", "spmview.yaml", "YAML configuration file")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	scanRange := flag.String("range", "100x100", "Physical scan range WIDTHxHEIGHT in nm")
	bgMode := flag.String("background", "", "Background subtraction: none, plane or linewise")
	sobel := flag.Bool("sobel", false, "Apply the Sobel gradient")
	normal := flag.Bool("normal", false, "Compute the surface normal z-component")
	laplace := flag.Bool("laplace", false, "Apply the Laplacian")
	gaussian := flag.Float64("gaussian", -1, "Gaussian blur width in nm (0 disables)")
	fft := flag.Bool("fft", false, "Compute the 2D Fourier transform")
	fftShift := flag.Bool("fft-shift", false, "Centre the zero frequency after the transform")
	proj := flag.String("projection", "", "Projection: re, im, abs, arg (b/w), arg (hue), complex, abs^2, log(abs)")
	percentile := flag.String("percentile", "", "Display range as LOW,HIGH percentiles")
	sigma := flag.Float64("sigma", -1, "Display range as mean +/- SIGMA standard deviations")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	if *inputs == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if env := os.Getenv("SPMVIEW_LOG_LEVEL"); env != "" {
		level = env
	}
	log := logger.NewConsole(logger.ParseLevel(level))

	// Command line flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "background":
			cfg.Processing.Background = *bgMode
		case "sobel":
			cfg.Processing.Sobel = *sobel
		case "normal":
			cfg.Processing.Normal = *normal
		case "laplace":
			cfg.Processing.Laplace = *laplace
		case "gaussian":
			cfg.Processing.Gaussian = true
			cfg.Processing.GaussianWidthNM = *gaussian
		case "fft":
			cfg.Processing.FFT = *fft
		case "fft-shift":
			cfg.Processing.FFTShift = *fftShift
		case "projection":
			cfg.Processing.Projection = *proj
		case "sigma":
			cfg.Display.UseDeviation = true
			cfg.Display.Deviations = *sigma
		}
	})
	if *percentile != "" {
		lo, hi, err := parsePair(*percentile, ",")
		if err != nil {
			log.Error("cli", err, map[string]interface{}{"flag": "percentile"})
			os.Exit(1)
		}
		cfg.Display.UseDeviation = false
		cfg.Display.PercentileLow, cfg.Display.PercentileHigh = lo, hi
	}
	if err := cfg.Validate(); err != nil {
		log.Error("cli", err, nil)
		os.Exit(1)
	}

	width, height, err := parsePair(*scanRange, "x")
	if err != nil {
		log.Error("cli", err, map[string]interface{}{"flag": "range"})
		os.Exit(1)
	}
	r := models.ScanRange{Width: width, Height: height}

	flags, err := cfg.Flags(r)
	if err != nil {
		log.Error("cli", err, nil)
		os.Exit(1)
	}

	// Load every input frame
	paths := strings.Split(*inputs, ",")
	frames := make([]models.Frame, 0, len(paths))
	metas := make([]models.ScanMetadata, 0, len(paths))
	for _, path := range paths {
		frame, meta, err := visualization.LoadFrame(strings.TrimSpace(path), r)
		if err != nil {
			log.Error("loader", err, nil)
			os.Exit(1)
		}
		log.Debug("loader", "frame loaded", map[string]interface{}{
			"source": meta.Source, "width": meta.Width, "height": meta.Height,
		})
		frames = append(frames, frame)
		metas = append(metas, meta)
	}

	startTime := time.Now()
	results, err := pipeline.New().ProcessBatch(context.Background(), frames, flags, cfg.Processing.NumCores)
	if err != nil {
		log.Error("pipeline", err, nil)
		os.Exit(1)
	}
	log.Info("pipeline", "processing finished", map[string]interface{}{
		"frames": len(results), "elapsed_ms": time.Since(startTime).Milliseconds(),
	})

	for i, res := range results {
		out := *outputPath
		if len(results) > 1 {
			base := strings.TrimSuffix(filepath.Base(metas[i].Source), filepath.Ext(metas[i].Source))
			out = filepath.Join(*outputPath, base+"_processed.png")
		}

		lo, hi, err := displayRange(res.Stats, cfg)
		if err != nil {
			log.Error("display", err, nil)
			os.Exit(1)
		}

		printSummary(metas[i], res, lo, hi)

		viewer, err := visualization.NewViewer(res.Frame, lo, hi)
		if err != nil {
			log.Error("display", err, nil)
			os.Exit(1)
		}
		if err := viewer.Save(out); err != nil {
			log.Error("display", err, map[string]interface{}{"output": out})
			os.Exit(1)
		}
		log.Info("display", "preview saved", map[string]interface{}{"output": out})
	}
}

// parsePair parses "A<sep>B" into two floats.
func parsePair(s, sep string) (float64, float64, error) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected two values separated by %q, got %q", models.ErrInvalidParameter, sep, s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", models.ErrInvalidParameter, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", models.ErrInvalidParameter, err)
	}
	return a, b, nil
}

// displayRange picks the display bounds configured for the result.
func displayRange(stats *statistics.Record, cfg *config.Config) (float64, float64, error) {
	if cfg.Display.UseDeviation {
		return stats.DeviationRange(cfg.Display.Deviations)
	}
	return stats.PercentileRange(cfg.Display.PercentileLow, cfg.Display.PercentileHigh)
}

func printSummary(meta models.ScanMetadata, res *pipeline.Result, lo, hi float64) {
	fmt.Printf("\n%s (%dx%d px, %.1fx%.1f nm)\n", meta.Source, meta.Width, meta.Height, meta.Range.Width, meta.Range.Height)
	fmt.Printf("=======================================\n")
	fmt.Printf("Stages:             %s\n", strings.Join(res.Stages, " -> "))
	fmt.Printf("Output:             %dx%d %s\n", res.Frame.Width, res.Frame.Height, res.Frame.Kind)
	fmt.Printf("Min / Max:          %.6g / %.6g\n", res.Stats.Min, res.Stats.Max)
	fmt.Printf("Mean:               %.6g\n", res.Stats.Mean)
	fmt.Printf("Standard deviation: %.6g\n", res.Stats.StandardDeviation)
	fmt.Printf("Range:              %.6g\n", res.Stats.RangeTotal)
	fmt.Printf("Display range:      [%.6g, %.6g]\n", lo, hi)
	if res.Reciprocal != nil {
		fmt.Printf("Reciprocal range:   %.4g x %.4g rad/nm\n", res.Reciprocal.KX, res.Reciprocal.KY)
	}
}
