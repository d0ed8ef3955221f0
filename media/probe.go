package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/process"
)

// Prober reads the total duration of a waveform via ffprobe.
type Prober struct {
	cfg Config
	run process.Runner
	log *logger.Logger
}

// NewProber creates a Prober with the given config.
func NewProber(cfg Config) *Prober {
	return NewProberWithRunner(cfg, process.Run)
}

// NewProberWithRunner creates a Prober with an explicit runner.
func NewProberWithRunner(cfg Config, run process.Runner) *Prober {
	cfg.ApplyDefaults()
	return &Prober{
		cfg: cfg,
		run: run,
		log: logger.Get("media"),
	}
}

// Probe returns the duration of wavPath in seconds.
func (p *Prober) Probe(ctx context.Context, wavPath string) (float64, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.cfg.ProbeTimeout)
	defer cancel()

	result, err := p.run(runCtx, process.Command{
		Binary: p.cfg.FFprobeBinary,
		Args: []string{
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			wavPath,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", wavPath, err)
	}

	raw := strings.TrimSpace(string(result.Stdout))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: parse duration %q: %w", wavPath, raw, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("probe %s: negative duration %v", wavPath, seconds)
	}
	return seconds, nil
}
