package main

import (
	"context"
	"fmt"

	"github.com/skillsenselab/meetscribe/config"
	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/diarization/pyannote"
	"github.com/skillsenselab/meetscribe/diarization/wholefile"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/transcription"
	"github.com/skillsenselab/meetscribe/transcription/groq"
	"github.com/skillsenselab/meetscribe/transcription/whisper"
)

// loadConfig loads the application configuration and initializes the global
// logger from it. Validation happens in the commands, after flag overrides
// are applied.
func loadConfig(configFile string) (*config.Config, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	cfg, err := config.Load(serviceName, opts...)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging)
	return cfg, nil
}

// newTranscriptionManager registers the known transcription backends and
// makes the configured one the default.
func newTranscriptionManager(cfg *config.Config) (*transcription.Manager, error) {
	mgr := transcription.NewManager()
	mgr.Register(config.BackendWhisper, whisper.Factory())
	mgr.Register(config.BackendGroq, groq.Factory())

	if err := mgr.Initialize(config.BackendWhisper, map[string]any{
		"url":          cfg.Whisper.URL,
		"model":        cfg.Whisper.Model,
		"language":     cfg.Whisper.Language,
		"beam_size":    cfg.Whisper.BeamSize,
		"compute_type": cfg.Whisper.ComputeType,
		"timeout":      cfg.Whisper.Timeout,
	}); err != nil {
		return nil, err
	}
	if cfg.Groq.APIKey != "" {
		if err := mgr.Initialize(config.BackendGroq, map[string]any{
			"base_url": cfg.Groq.BaseURL,
			"api_key":  cfg.Groq.APIKey,
			"model":    cfg.Groq.Model,
			"language": cfg.Groq.Language,
			"timeout":  cfg.Groq.Timeout,
		}); err != nil {
			return nil, err
		}
	}
	if err := mgr.SetDefault(cfg.Backend); err != nil {
		return nil, err
	}
	return mgr, nil
}

// newDiarizer picks the diarization backend: the pyannote sidecar, or the
// single-turn fallback when diarization is disabled.
func newDiarizer(cfg *config.Config) diarization.Provider {
	if cfg.NoDiarization {
		return wholefile.NewProvider(media.NewProber(cfg.Media))
	}
	return pyannote.NewProvider(cfg.Pyannote)
}

// buildPipeline assembles a complete transcription pipeline from the
// application configuration.
func buildPipeline(ctx context.Context, cfg *config.Config, notifier meeting.Notifier) (*meeting.Pipeline, error) {
	mgr, err := newTranscriptionManager(cfg)
	if err != nil {
		return nil, err
	}
	transcriber, err := mgr.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("select transcription backend: %w", err)
	}

	pcfg := cfg.Pipeline
	pcfg.WholeFile = cfg.NoDiarization

	return meeting.NewPipeline(
		pcfg,
		media.NewNormalizer(cfg.Media),
		media.NewExtractor(cfg.Media),
		newDiarizer(cfg),
		transcriber,
		notifier,
	), nil
}
