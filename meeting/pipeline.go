package meeting

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/skillsenselab/meetscribe/diarization"
	"github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/observability"
	"github.com/skillsenselab/meetscribe/transcription"
)

// Normalizer converts input media into the canonical waveform.
// media.Normalizer satisfies it.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath string, ws *media.Workspace) (string, error)
}

// Extractor cuts a turn's sub-range out of the canonical waveform.
// media.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, wavPath string, start, end float64, outPath string) (string, error)
}

// Config holds pipeline tuning knobs. The transcription backend and the
// diarization mode are fixed per pipeline; there is no mid-job switching.
type Config struct {
	// Language is the fixed target language passed to the transcriber.
	Language string `yaml:"language" mapstructure:"language"`
	// Workers bounds concurrent per-turn extraction+transcription.
	Workers int `yaml:"workers" mapstructure:"workers"`
	// JobTimeout bounds a whole pipeline run.
	JobTimeout time.Duration `yaml:"job_timeout" mapstructure:"job_timeout"`
	// WorkspaceDir is the parent directory for job workspaces
	// (empty = system temp).
	WorkspaceDir string `yaml:"workspace_dir" mapstructure:"workspace_dir"`
	// WholeFile marks the degraded single-turn mode. In this mode a failed
	// or empty transcription is fatal: there is no smaller unit to fall
	// back to.
	WholeFile bool `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.JobTimeout == 0 {
		c.JobTimeout = 30 * time.Minute
	}
}

// Pipeline sequences normalize, diarize, extract and transcribe into a
// single speaker-attributed transcript.
type Pipeline struct {
	cfg         Config
	normalizer  Normalizer
	extractor   Extractor
	diarizer    diarization.Provider
	transcriber transcription.Provider
	notifier    Notifier
	log         *logger.Logger
}

// NewPipeline assembles a pipeline from its stages. A nil notifier is
// replaced with one that logs progress.
func NewPipeline(
	cfg Config,
	normalizer Normalizer,
	extractor Extractor,
	diarizer diarization.Provider,
	transcriber transcription.Provider,
	notifier Notifier,
) *Pipeline {
	cfg.ApplyDefaults()
	log := logger.Get("meeting")
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &Pipeline{
		cfg:         cfg,
		normalizer:  normalizer,
		extractor:   extractor,
		diarizer:    diarizer,
		transcriber: transcriber,
		notifier:    notifier,
		log:         log,
	}
}

// Process runs the pipeline on one input file. It returns either a Result
// or an error, never both. All intermediate files are removed before it
// returns, on every exit path.
func (p *Pipeline) Process(ctx context.Context, inputPath string) (*Result, error) {
	result, err := p.process(ctx, inputPath)
	if err != nil {
		p.notifier.Notify(Event{Status: StatusFailed, Error: err.Error()})
		return nil, err
	}
	p.notifier.Notify(Event{Status: StatusCompleted})
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, inputPath string) (*Result, error) {
	// Pre-flight: nothing downstream is meaningful without a readable input.
	if inputPath == "" {
		return nil, errors.MissingField("input path")
	}
	if _, err := os.Stat(inputPath); err != nil {
		return nil, errors.InvalidInput("input path", "file does not exist").WithCause(err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.JobTimeout)
	defer cancel()

	ctx, span := observability.StartSpan(ctx, "meeting.process")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrBackend, p.transcriber.Name())

	ws, err := media.NewWorkspace(p.cfg.WorkspaceDir)
	if err != nil {
		return nil, errors.Internal(err)
	}
	defer ws.Close()

	p.notifier.Notify(Event{Status: StatusConverting})
	wavPath, err := p.normalizer.Normalize(ctx, inputPath, ws)
	if err != nil {
		return nil, errors.Normalization(err)
	}

	p.notifier.Notify(Event{Status: StatusDiarizing})
	diarized, err := p.diarizer.Diarize(ctx, diarization.Request{AudioPath: wavPath})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, errors.Diarization(err)
	}
	turns := diarization.SanitizeTurns(diarized.Turns)
	observability.SetSpanAttribute(ctx, observability.AttrTurns, len(turns))

	// The completion notice goes out before the zero-turn check so a
	// consumer can tell "model found nothing" apart from "model broke".
	p.notifier.Notify(Event{Status: StatusDiarizationComplete, Turns: len(turns)})
	if len(turns) == 0 {
		return nil, errors.NoSpeech()
	}

	segments, err := p.transcribeTurns(ctx, ws, wavPath, turns)
	if err != nil {
		return nil, err
	}

	// Duration reflects the meeting's span even if trailing segments were
	// dropped. In whole-file mode the single turn's end is the probed audio
	// length, so the same rule covers both modes.
	return &Result{
		Segments:      segments,
		Duration:      round2(turns[len(turns)-1].End),
		SpeakersCount: countSpeakers(segments),
	}, nil
}

// transcribeTurns extracts and transcribes every turn with a bounded worker
// pool, reassembling results in chronological turn order. Per-turn failures
// drop that turn; they never cancel sibling workers.
func (p *Pipeline) transcribeTurns(ctx context.Context, ws *media.Workspace, wavPath string, turns []diarization.Turn) ([]Segment, error) {
	ctx, span := observability.StartSpan(ctx, "meeting.transcribe_turns")
	defer span.End()

	total := len(turns)
	p.notifier.Notify(Event{Status: StatusTranscribing, Completed: 0, Total: total})

	results := make([]*Segment, total)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	sem := make(chan struct{}, p.cfg.Workers)

	for i, turn := range turns {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, turn diarization.Turn) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx] = p.transcribeTurn(ctx, ws, wavPath, idx, turn)

			mu.Lock()
			completed++
			done := completed
			mu.Unlock()
			if done%10 == 0 && done < total {
				p.notifier.Notify(Event{Status: StatusTranscribing, Completed: done, Total: total})
			}
		}(i, turn)
	}
	wg.Wait()

	segments := make([]Segment, 0, total)
	for _, seg := range results {
		if seg != nil {
			segments = append(segments, *seg)
		}
	}

	// Whole-file mode has exactly one unit of work; losing it means the run
	// produced nothing and must fail rather than report an empty transcript.
	if p.cfg.WholeFile && len(segments) == 0 {
		return nil, errors.Transcription(nil)
	}
	return segments, nil
}

// transcribeTurn handles one turn. A nil return means the turn was dropped.
func (p *Pipeline) transcribeTurn(ctx context.Context, ws *media.Workspace, wavPath string, idx int, turn diarization.Turn) *Segment {
	segPath, err := p.extractor.Extract(ctx, wavPath, turn.Start, turn.End, ws.SegmentPath(idx))
	if err != nil {
		p.log.Warn("turn dropped: extraction failed", logger.Fields(
			"turn", idx,
			logger.FieldSpeaker, turn.Speaker,
			logger.FieldError, err.Error(),
		))
		return nil
	}

	resp, err := p.transcriber.Transcribe(ctx, transcription.Request{
		AudioPath: segPath,
		Language:  p.cfg.Language,
	})
	if err != nil {
		p.log.Warn("turn dropped: transcription failed", logger.Fields(
			"turn", idx,
			logger.FieldSpeaker, turn.Speaker,
			logger.FieldError, err.Error(),
		))
		return nil
	}
	if resp.Text == "" {
		p.log.Debug("turn dropped: empty transcription", logger.Fields(
			"turn", idx,
			logger.FieldSpeaker, turn.Speaker,
		))
		return nil
	}

	return &Segment{
		Speaker: turn.Speaker,
		Start:   round2(turn.Start),
		End:     round2(turn.End),
		Text:    resp.Text,
	}
}
