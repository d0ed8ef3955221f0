package media

import (
	"context"
	"fmt"
	"strconv"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/process"
)

// Extractor cuts a sub-range out of a canonical waveform.
type Extractor struct {
	cfg Config
	run process.Runner
	log *logger.Logger
}

// NewExtractor creates an Extractor with the given config.
func NewExtractor(cfg Config) *Extractor {
	return NewExtractorWithRunner(cfg, process.Run)
}

// NewExtractorWithRunner creates an Extractor with an explicit runner.
func NewExtractorWithRunner(cfg Config, run process.Runner) *Extractor {
	cfg.ApplyDefaults()
	return &Extractor{
		cfg: cfg,
		run: run,
		log: logger.Get("media"),
	}
}

// Extract writes the [start, end) range of wavPath to outPath and returns
// outPath. Degenerate ranges fail fast without invoking ffmpeg.
func (e *Extractor) Extract(ctx context.Context, wavPath string, start, end float64, outPath string) (string, error) {
	duration := end - start
	if duration <= 0 {
		return "", fmt.Errorf("extract: invalid range [%v, %v)", start, end)
	}
	if start < 0 {
		return "", fmt.Errorf("extract: negative start %v", start)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.cfg.ExtractTimeout)
	defer cancel()

	result, err := e.run(runCtx, process.Command{
		Binary: e.cfg.FFmpegBinary,
		Args: []string{
			"-i", wavPath,
			"-ss", formatSeconds(start),
			"-t", formatSeconds(duration),
			"-y",
			outPath,
		},
	})
	if err != nil {
		e.log.Warn("extract failed", map[string]interface{}{
			"start":  start,
			"end":    end,
			"error":  err.Error(),
			"stderr": tail(result, 400),
		})
		return "", fmt.Errorf("extract [%v, %v): %w", start, end, err)
	}

	return outPath, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
