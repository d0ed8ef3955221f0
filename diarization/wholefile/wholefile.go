// Package wholefile implements diarization.Provider without a model: it
// emits one turn labeled SPEAKER_00 spanning the whole recording. The
// pipeline uses it when diarization is disabled so both modes share the
// same downstream path.
package wholefile

import (
	"context"
	"fmt"

	"github.com/skillsenselab/meetscribe/diarization"
)

// ProviderName is the registered name for the whole-file provider.
const ProviderName = "wholefile"

// DurationProber reports the length of a waveform in seconds.
// media.Prober satisfies it.
type DurationProber interface {
	Probe(ctx context.Context, wavPath string) (float64, error)
}

// Provider implements diarization.Provider by probing the audio length.
type Provider struct {
	probe DurationProber
}

// NewProvider creates a whole-file provider backed by the given prober.
func NewProvider(probe DurationProber) *Provider {
	return &Provider{probe: probe}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable always reports true; there is no external dependency.
func (p *Provider) IsAvailable(_ context.Context) bool { return true }

// Diarize returns a single turn covering [0, duration) of the input.
// A zero-length recording yields zero turns.
func (p *Provider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Result, error) {
	duration, err := p.probe.Probe(ctx, req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}
	if duration <= 0 {
		return &diarization.Result{}, nil
	}
	return &diarization.Result{
		Turns: []diarization.Turn{{
			Speaker: diarization.DefaultSpeaker,
			Start:   0,
			End:     duration,
		}},
		NumSpeakers: 1,
	}, nil
}
