package stego

import (
	"fmt"
	"image"

	"github.com/neurlang/specstego/codec"
	"github.com/neurlang/specstego/config"
	"github.com/neurlang/specstego/mix"
	"github.com/neurlang/specstego/phase"
	"github.com/neurlang/specstego/raster"
	"github.com/neurlang/specstego/spectro"
	"github.com/neurlang/specstego/wave"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Encoder hides a text message in the spectrogram of a host recording.
type Encoder struct {
	cfg      config.Config
	log      logrus.FieldLogger
	progress func(done, total int)
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLogger sets the logger stages report to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Encoder) {
		e.log = l
	}
}

// WithProgress sets a callback run after every reconstruction round.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Encoder) {
		e.progress = fn
	}
}

// NewEncoder validates cfg and returns an Encoder for it.
func NewEncoder(cfg config.Config, opts ...Option) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Encoder{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the settings the encoder was built with.
func (e *Encoder) Config() config.Config {
	return e.cfg
}

// Frames is the number of spectrogram frames the message spans.
func (e *Encoder) Frames() int {
	return spectro.TimeFrames(e.cfg.SampleRate, e.cfg.MessageLength(), e.cfg.HopLength)
}

// Pattern renders the message on a grid one column per frame wide.
func (e *Encoder) Pattern(tf *raster.Typeface) *image.Gray {
	r := &raster.Rasterizer{
		Width:    e.Frames(),
		Height:   e.cfg.GridHeight,
		FontSize: e.cfg.FontSize,
		Flip:     e.cfg.Flip,
		Typeface: tf,
	}
	grid := r.Rasterize(e.cfg.Message)
	e.log.WithFields(logrus.Fields{
		"stage":  StageRasterization,
		"width":  grid.Bounds().Dx(),
		"height": grid.Bounds().Dy(),
		"flip":   e.cfg.Flip,
	}).Debug("message rasterized")
	return grid
}

// Magnitude maps grid onto the spectrogram. The grid must be Frames() wide.
func (e *Encoder) Magnitude(grid *image.Gray) (*mat.Dense, error) {
	if w := grid.Bounds().Dx(); w != e.Frames() {
		return nil, fail(StageMapping, fmt.Errorf("%w: grid is %d columns, want %d frames", ErrShapeMismatch, w, e.Frames()))
	}
	m := &spectro.Mapper{
		FrameSize:    e.cfg.FrameSize,
		HopLength:    e.cfg.HopLength,
		MaxAmplitude: e.cfg.MaxAmplitude,
	}
	mag, err := m.ToMagnitude(grid)
	if err != nil {
		return nil, fail(StageMapping, err)
	}
	bins, frames := mag.Dims()
	e.log.WithFields(logrus.Fields{
		"stage":  StageMapping,
		"bins":   bins,
		"frames": frames,
	}).Debug("spectrogram mapped")
	return mag, nil
}

// Reconstruct runs Griffin-Lim on mag.
func (e *Encoder) Reconstruct(mag mat.Matrix) ([]float64, error) {
	r := &phase.Reconstructor{
		FrameSize:  e.cfg.FrameSize,
		HopLength:  e.cfg.HopLength,
		Iterations: e.cfg.Iterations,
		Window:     phase.Window(e.cfg.Window),
		Momentum:   e.cfg.Momentum,
		InitPhase:  phase.InitPhase(e.cfg.InitPhase),
		Seed:       e.cfg.Seed,
		Progress:   e.progress,
	}
	raw, err := r.Reconstruct(mag)
	if err != nil {
		return nil, fail(StageReconstruction, err)
	}
	e.log.WithFields(logrus.Fields{
		"stage":      StageReconstruction,
		"iterations": e.cfg.Iterations,
		"samples":    len(raw),
	}).Debug("phase reconstructed")
	return raw, nil
}

// Fit peak-normalizes raw and fits it to the message duration.
func (e *Encoder) Fit(raw []float64) ([]float64, error) {
	msg := wave.Fit(raw, e.cfg.SampleRate, e.cfg.MessageLength())
	if len(msg) == 0 {
		return nil, fail(StageFitting, fmt.Errorf("%w: %v s at %d Hz", ErrEmptyMessage, e.cfg.MessageDuration, e.cfg.SampleRate))
	}
	return msg, nil
}

// Synthesize turns the message text into its waveform.
func (e *Encoder) Synthesize(tf *raster.Typeface) ([]float64, error) {
	mag, err := e.Magnitude(e.Pattern(tf))
	if err != nil {
		return nil, err
	}
	raw, err := e.Reconstruct(mag)
	if err != nil {
		return nil, err
	}
	return e.Fit(raw)
}

// Embed mixes message into host at the configured offset, gain and length.
func (e *Encoder) Embed(host, message []float64) ([]float64, error) {
	return e.embed(host, message, e.cfg.SampleRate)
}

func (e *Encoder) embed(host, message []float64, rate int) ([]float64, error) {
	out, err := mix.Mix(host, message, rate, mix.Params{
		StartOffset:    e.cfg.StartTime(),
		GainDB:         e.cfg.GainDB,
		OutputDuration: e.cfg.OutputLength(),
	})
	if err != nil {
		return nil, fail(StageCompositing, err)
	}
	return out, nil
}

// loadHost decodes the host at its own rate when NativeRate is set and at
// the synthesis rate otherwise.
func (e *Encoder) loadHost() ([]float64, int, error) {
	if e.cfg.NativeRate {
		host, rate, err := codec.Decode(e.cfg.HostPath)
		if err != nil {
			return nil, 0, fail(StageLoading, err)
		}
		return host, rate, nil
	}
	host, err := codec.Load(e.cfg.HostPath, e.cfg.SampleRate)
	if err != nil {
		return nil, 0, fail(StageLoading, err)
	}
	return host, e.cfg.SampleRate, nil
}

// Retime resamples a fitted message to rate, keeping the message duration.
func (e *Encoder) Retime(message []float64, rate int) ([]float64, error) {
	if rate == e.cfg.SampleRate {
		return message, nil
	}
	out, err := codec.Resample(message, e.cfg.SampleRate, rate)
	if err != nil {
		return nil, fail(StageFitting, err)
	}
	return wave.FitLength(out, wave.SampleCount(rate, e.cfg.MessageLength())), nil
}

// Run reads the font and host, encodes the message and writes the output file.
func (e *Encoder) Run() error {
	log := e.log.WithFields(logrus.Fields{
		"host":   e.cfg.HostPath,
		"output": e.cfg.OutputPath,
	})

	tf, err := raster.OpenTypeface(e.cfg.FontPath)
	if err != nil {
		return fail(StageRasterization, err)
	}
	if !tf.Scalable() {
		log.WithField("font", e.cfg.FontPath).Warn("font unavailable, using fixed fallback face")
	}

	host, rate, err := e.loadHost()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"samples": len(host),
		"rate":    rate,
	}).Info("host loaded")

	message, err := e.Synthesize(tf)
	if err != nil {
		return err
	}
	if message, err = e.Retime(message, rate); err != nil {
		return err
	}
	mixed, err := e.embed(host, message, rate)
	if err != nil {
		return err
	}

	if err := codec.Save(e.cfg.OutputPath, mixed, rate, e.cfg.BitDepth); err != nil {
		return fail(StageSaving, err)
	}
	log.WithFields(logrus.Fields{
		"samples":  len(mixed),
		"rate":     rate,
		"start":    e.cfg.StartTime(),
		"gain_db":  e.cfg.GainDB,
		"typeface": tf.Name,
	}).Info("message embedded")
	return nil
}
