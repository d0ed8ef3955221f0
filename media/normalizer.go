package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/process"
)

// Canonical waveform parameters. Both downstream models expect mono 16 kHz
// input; deviating breaks their accuracy guarantees.
const (
	SampleRate = 16000
	Channels   = 1
)

// Normalizer converts arbitrary input media into the canonical waveform.
type Normalizer struct {
	cfg Config
	run process.Runner
	log *logger.Logger
}

// NewNormalizer creates a Normalizer with the given config.
func NewNormalizer(cfg Config) *Normalizer {
	return NewNormalizerWithRunner(cfg, process.Run)
}

// NewNormalizerWithRunner creates a Normalizer with an explicit runner.
func NewNormalizerWithRunner(cfg Config, run process.Runner) *Normalizer {
	cfg.ApplyDefaults()
	return &Normalizer{
		cfg: cfg,
		run: run,
		log: logger.Get("media"),
	}
}

// Normalize converts inputPath into a mono 16 kHz WAV inside the workspace
// and returns its path. The run is bounded by the configured timeout; a
// timeout is reported the same way as a tool failure.
func (n *Normalizer) Normalize(ctx context.Context, inputPath string, ws *Workspace) (string, error) {
	out := ws.Path("audio.wav")

	runCtx, cancel := context.WithTimeout(ctx, n.cfg.NormalizeTimeout)
	defer cancel()

	result, err := n.run(runCtx, process.Command{
		Binary: n.cfg.FFmpegBinary,
		Args: []string{
			"-i", inputPath,
			"-ar", fmt.Sprintf("%d", SampleRate),
			"-ac", fmt.Sprintf("%d", Channels),
			"-y",
			out,
		},
	})
	if err != nil {
		n.log.Error("normalize failed", map[string]interface{}{
			"input":  inputPath,
			"error":  err.Error(),
			"stderr": tail(result, 400),
		})
		return "", fmt.Errorf("normalize %s: %w", inputPath, err)
	}

	n.log.Debug("normalized", map[string]interface{}{
		"input":       inputPath,
		"output":      out,
		"duration_ms": result.Duration.Milliseconds(),
	})
	return out, nil
}

// tail returns the last n bytes of a result's stderr, for diagnostics.
func tail(r *process.Result, n int) string {
	if r == nil {
		return ""
	}
	s := strings.TrimSpace(string(r.Stderr))
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
