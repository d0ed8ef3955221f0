package media

import "time"

// Config holds media tool configuration.
type Config struct {
	// FFmpegBinary is the ffmpeg executable (resolved via PATH by default).
	FFmpegBinary string `yaml:"ffmpeg_binary" mapstructure:"ffmpeg_binary"`
	// FFprobeBinary is the ffprobe executable.
	FFprobeBinary string `yaml:"ffprobe_binary" mapstructure:"ffprobe_binary"`
	// NormalizeTimeout bounds a whole-file conversion.
	NormalizeTimeout time.Duration `yaml:"normalize_timeout" mapstructure:"normalize_timeout"`
	// ExtractTimeout bounds a single segment extraction. Segments are short,
	// so this is much tighter than NormalizeTimeout.
	ExtractTimeout time.Duration `yaml:"extract_timeout" mapstructure:"extract_timeout"`
	// ProbeTimeout bounds a duration probe.
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.FFprobeBinary == "" {
		c.FFprobeBinary = "ffprobe"
	}
	if c.NormalizeTimeout == 0 {
		c.NormalizeTimeout = 5 * time.Minute
	}
	if c.ExtractTimeout == 0 {
		c.ExtractTimeout = 60 * time.Second
	}
	if c.ProbeTimeout == 0 {
		c.ProbeTimeout = 30 * time.Second
	}
}
