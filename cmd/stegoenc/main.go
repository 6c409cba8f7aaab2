package main

import (
	"flag"
	"fmt"

	"github.com/neurlang/specstego/config"
	"github.com/neurlang/specstego/stego"
	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func main() {
	logger := logrus.New()
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *logrus.Logger) error {
	configPath := flag.String("config", "", "YAML config file")
	message := flag.String("message", "", "Text to hide")
	host := flag.String("host", "", "Host audio file")
	out := flag.String("out", "", "Output WAV file")
	font := flag.String("font", "", "TrueType font file (empty for the embedded font)")
	start := flag.Float64("start", 0, "Offset of the message in the host, seconds")
	duration := flag.Float64("duration", 0, "Length of the message, seconds")
	total := flag.Float64("total", 0, "Length of the output, seconds (0 keeps the host length)")
	gain := flag.Float64("gain", 0, "Message level relative to full scale, dB")
	iterations := flag.Int("iterations", 0, "Griffin-Lim rounds")
	seed := flag.Int64("seed", 0, "Seed of the random initial phase")
	flip := flag.Bool("flip", true, "Draw the text upright with frequency increasing upward")
	native := flag.Bool("native", true, "Keep the host sample rate in the output")
	progress := flag.Bool("progress", true, "Show a progress bar")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// flags only override what was given on the command line
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "message":
			cfg.Message = *message
		case "host":
			cfg.HostPath = *host
		case "out":
			cfg.OutputPath = *out
		case "font":
			cfg.FontPath = *font
		case "start":
			cfg.StartOffset = *start
		case "duration":
			cfg.MessageDuration = *duration
		case "total":
			cfg.OutputDuration = *total
		case "gain":
			cfg.GainDB = *gain
		case "iterations":
			cfg.Iterations = *iterations
		case "seed":
			cfg.Seed = *seed
		case "flip":
			cfg.Flip = *flip
		case "native":
			cfg.NativeRate = *native
		}
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	opts := []stego.Option{stego.WithLogger(logger)}

	var (
		bars *mpb.Progress
		bar  *mpb.Bar
	)
	if *progress {
		bars = mpb.New(mpb.WithWidth(60))
		bar = bars.AddBar(int64(cfg.Iterations),
			mpb.PrependDecorators(
				decor.Name("griffin-lim "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
		opts = append(opts, stego.WithProgress(func(done, _ int) {
			bar.SetCurrent(int64(done))
		}))
	}

	enc, err := stego.NewEncoder(cfg, opts...)
	if err != nil {
		if bar != nil {
			bar.Abort(true)
			bars.Wait()
		}
		return err
	}

	err = enc.Run()
	if bar != nil {
		if err != nil {
			bar.Abort(false)
		}
		bars.Wait()
	}
	if err != nil {
		return err
	}

	used := enc.Config()
	fmt.Printf("Hid %q in %s at %.2fs -> %s\n", used.Message, used.HostPath, used.StartOffset, used.OutputPath)
	return nil
}
