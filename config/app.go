package config

import (
	"os"

	"github.com/skillsenselab/meetscribe/diarization/pyannote"
	"github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/observability"
	"github.com/skillsenselab/meetscribe/server"
	"github.com/skillsenselab/meetscribe/transcription/groq"
	"github.com/skillsenselab/meetscribe/transcription/whisper"
	"github.com/skillsenselab/meetscribe/validation"
)

// Transcription backends.
const (
	BackendWhisper = "whisper"
	BackendGroq    = "groq"
)

// Config is the full application configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the transcription backend for new jobs.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=whisper groq"`
	// NoDiarization disables speaker diarization; the whole recording is
	// transcribed as a single speaker turn.
	NoDiarization bool `yaml:"no_diarization" mapstructure:"no_diarization"`

	Pipeline meeting.Config             `yaml:"pipeline" mapstructure:"pipeline"`
	Media    media.Config               `yaml:"media" mapstructure:"media"`
	Pyannote pyannote.Config            `yaml:"pyannote" mapstructure:"pyannote"`
	Whisper  whisper.Config             `yaml:"whisper" mapstructure:"whisper"`
	Groq     groq.Config                `yaml:"groq" mapstructure:"groq"`
	Server   server.Config              `yaml:"server" mapstructure:"server"`
	Tracing  observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// Load reads the application configuration from config files and the
// environment and applies defaults.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}

	// Well-known credential variables map onto their config fields.
	if cfg.Pyannote.AuthToken == "" {
		cfg.Pyannote.AuthToken = os.Getenv("HF_TOKEN")
	}
	if cfg.Groq.APIKey == "" {
		cfg.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields and propagates shared values into the
// component configs.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()

	if c.Backend == "" {
		c.Backend = BackendWhisper
	}

	c.Pipeline.ApplyDefaults()
	c.Media.ApplyDefaults()
	c.Pyannote.ApplyDefaults()
	c.Whisper.ApplyDefaults()
	c.Groq.ApplyDefaults()
	c.Server.ApplyDefaults()

	// The transcribers follow the pipeline language unless set explicitly.
	if c.Whisper.Language == "" {
		c.Whisper.Language = c.Pipeline.Language
	}
	if c.Groq.Language == "" {
		c.Groq.Language = c.Pipeline.Language
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
}

// Validate checks the configuration, including the credentials the selected
// backends need.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}

	if !c.NoDiarization && c.Pyannote.AuthToken == "" {
		return errors.Configuration("pyannote.auth_token",
			"a Hugging Face token is required for diarization; set HF_TOKEN or disable diarization")
	}
	if c.Backend == BackendGroq && c.Groq.APIKey == "" {
		return errors.Configuration("groq.api_key",
			"an API key is required for the groq backend; set GROQ_API_KEY")
	}
	return nil
}
