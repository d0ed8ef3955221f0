package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillsenselab/meetscribe/meeting"
)

// newProcessCommand transcribes a single recording and prints the result as
// JSON on stdout. Progress goes to the log; stdout carries exactly one JSON
// document so the output can be piped.
func newProcessCommand(configFlag *string) *cobra.Command {
	var (
		language      string
		backend       string
		noDiarization bool
		workers       int
	)

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Transcribe a meeting recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if language != "" {
				cfg.Pipeline.Language = language
				cfg.Whisper.Language = language
				cfg.Groq.Language = language
			}
			if backend != "" {
				cfg.Backend = backend
			}
			if noDiarization {
				cfg.NoDiarization = true
			}
			if workers > 0 {
				cfg.Pipeline.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pipeline, err := buildPipeline(ctx, cfg, nil)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			result, err := pipeline.Process(ctx, args[0])
			if err != nil {
				_ = enc.Encode(meeting.ErrorResult{Error: err.Error()})
				return err
			}
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "Transcription language (default from config)")
	cmd.Flags().StringVar(&backend, "backend", "", "Transcription backend: whisper or groq")
	cmd.Flags().BoolVar(&noDiarization, "no-diarization", false, "Skip speaker diarization; transcribe as one speaker")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent segment transcriptions")

	return cmd
}
