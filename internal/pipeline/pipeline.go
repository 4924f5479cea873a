// Package pipeline orchestrates the workflow of a program run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/memdump"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/random"
	"github.com/retroenv/chip8vm/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

// Report describes a finished run.
type Report struct {
	chip8.Result
	Snapshot chip8.Snapshot
	Seed     uint64 // seed of the random source, reproduces the run
	TimedOut bool   // the run was stopped by the configured timeout
}

// Pipeline orchestrates the complete workflow of running a program.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(logger),
	}
}

// Execute runs the complete pipeline: detect the host, load the program,
// run it in the host and report the result.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (Report, error) {
	kind := p.detector.Detect(opts)

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return Report{}, fmt.Errorf("loading program: %w", err)
	}

	sample, err := p.loadSample(opts)
	if err != nil {
		return Report{}, err
	}

	frame, closeFrame, err := createFrameWriter(opts, kind)
	if err != nil {
		return Report{}, err
	}
	defer closeFrame()

	h, err := p.initializeHost(opts, kind, app.HostResources{Frame: frame, Sample: sample})
	if err != nil {
		return Report{}, err
	}

	report, err := p.ExecuteWithHost(ctx, program, opts, h, sample)
	if errClose := h.Close(); errClose != nil && err == nil {
		err = fmt.Errorf("closing host: %w", errClose)
	}
	return report, err
}

// ExecuteWithHost runs a pre-loaded program in the given host.
// This is useful for testing and programmatic usage where the program is already in memory.
// The host is not closed.
func (p *Pipeline) ExecuteWithHost(ctx context.Context, program []byte, opts options.Program,
	h host.Host, sample *sound.Sample) (Report, error) {

	rnd := random.New(opts.Seed)
	machine := chip8.New(rnd)
	if err := machine.LoadProgram(program); err != nil {
		return Report{}, fmt.Errorf("loading program: %w", err)
	}

	peripherals := h.Peripherals()
	peripherals.Pacer = config.CreatePacer(opts)

	recorder, closeRecorder, err := p.createRecorder(opts, sample)
	if err != nil {
		return Report{}, err
	}
	if recorder != nil {
		peripherals.Audio = appendSink(peripherals.Audio, recorder)
	}

	clock := chip8.NewClock(p.logger, machine, peripherals, config.CreateClockConfig(opts))
	if observer, ok := h.(host.Observer); ok {
		observer.Observe(clock)
	}

	app.PrintInfo(p.logger, opts, h.Kind(), len(program), rnd.Seed())

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var result chip8.Result
	runErr := h.Run(ctx, func(ctx context.Context) error {
		var err error
		result, err = clock.Run(ctx)
		return err
	})

	report := Report{
		Result:   result,
		Snapshot: machine.Snapshot(),
		Seed:     rnd.Seed(),
	}

	if err := closeRecorder(); err != nil && runErr == nil {
		runErr = err
	}
	if opts.MemViz != "" {
		if err := memdump.WriteFile(opts.MemViz, machine); err != nil && runErr == nil {
			runErr = err
		}
	}

	if errors.Is(runErr, context.DeadlineExceeded) && opts.Timeout > 0 {
		report.TimedOut = true
		runErr = nil
	}
	if runErr != nil {
		var execErr *chip8.ExecutionError
		if errors.As(runErr, &execErr) {
			p.logger.Error("Machine state at fatal error", log.String("registers", report.Snapshot.String()))
		}
		return report, fmt.Errorf("running program: %w", runErr)
	}

	p.printReport(opts, report)
	return report, nil
}

// initializeHost creates the host. An auto-detected host that is not available
// falls back to the headless host.
func (p *Pipeline) initializeHost(opts options.Program, kind host.Kind, res app.HostResources) (host.Host, error) {
	h, err := app.InitializeHost(p.logger, opts, kind, res)
	if err == nil {
		return h, nil
	}
	if !isAutoHost(opts) || !errors.Is(err, host.ErrUnavailable) {
		return nil, fmt.Errorf("initializing host: %w", err)
	}

	p.logger.Warn("Detected host not available, running headless", log.Err(err))
	h, err = app.InitializeHost(p.logger, opts, host.Headless, res)
	if err != nil {
		return nil, fmt.Errorf("initializing host: %w", err)
	}
	return h, nil
}

// loadSample loads the beep sample if one is configured.
func (p *Pipeline) loadSample(opts options.Program) (*sound.Sample, error) {
	if opts.Beep == "" {
		return nil, nil
	}
	sample, err := sound.LoadSample(opts.Beep)
	if err != nil {
		return nil, fmt.Errorf("loading beep sample: %w", err)
	}
	p.logger.Debug("Beep sample loaded",
		log.String("file", opts.Beep),
		log.Int("sample_rate", sample.SampleRate),
		log.Int("samples", len(sample.Data)))
	return sample, nil
}

// createRecorder creates the WAV recorder of the beeper if one is configured.
// Unthrottled runs are recorded as if running at the default rate.
func (p *Pipeline) createRecorder(opts options.Program, sample *sound.Sample) (*sound.Recorder, func() error, error) {
	if opts.Wav == "" {
		return nil, func() error { return nil }, nil
	}

	file, err := os.Create(opts.Wav)
	if err != nil {
		return nil, nil, fmt.Errorf("creating wav file %s: %w", opts.Wav, err)
	}

	if sample == nil {
		sample = sound.NewSquareWave(sound.SampleRate, sound.DefaultFrequency, sound.DefaultVolume)
	}
	rate := opts.Rate
	if rate <= 0 {
		rate = options.DefaultRate
	}
	recorder := sound.NewRecorder(file, sample, rate)

	closeRecorder := func() error {
		errRecorder := recorder.Close()
		errFile := file.Close()
		if err := errors.Join(errRecorder, errFile); err != nil {
			return fmt.Errorf("writing wav file %s: %w", opts.Wav, err)
		}
		p.logger.Debug("Beeper recorded", log.String("file", opts.Wav), log.Int("samples", recorder.Samples()))
		return nil
	}
	return recorder, closeRecorder, nil
}

// printReport prints the result of a finished run.
func (p *Pipeline) printReport(opts options.Program, report Report) {
	if opts.Quiet {
		return
	}

	reason := report.Reason.String()
	if report.TimedOut {
		reason = "timeout reached"
	}
	p.logger.Info("Program stopped",
		log.String("reason", reason),
		log.Int("instructions", int(report.Cycles)),
	)
	p.logger.Debug("Final machine state", log.String("registers", report.Snapshot.String()))
}

// createFrameWriter returns the writer for the final frame of the headless host.
// Without an output file the frame is printed on the console.
func createFrameWriter(opts options.Program, kind host.Kind) (io.Writer, func(), error) {
	if kind != host.Headless && !isAutoHost(opts) {
		return nil, func() {}, nil
	}
	if opts.Output == "" {
		if opts.Quiet {
			return nil, func() {}, nil
		}
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, func() { _ = file.Close() }, nil
}

// appendSink adds an audio sink to an optional existing one.
func appendSink(existing chip8.AudioSink, sink chip8.AudioSink) chip8.AudioSink {
	if existing == nil {
		return sink
	}
	return sound.Sinks{existing, sink}
}

// isAutoHost returns whether the host is selected by auto-detection.
func isAutoHost(opts options.Program) bool {
	return opts.Host == "" || host.Kind(opts.Host) == host.Auto
}
