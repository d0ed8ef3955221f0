package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/media"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/observability"
	"github.com/skillsenselab/meetscribe/server"
	"github.com/skillsenselab/meetscribe/sse"
	"github.com/skillsenselab/meetscribe/store"
	"github.com/skillsenselab/meetscribe/util"
	"github.com/skillsenselab/meetscribe/version"
)

// newServeCommand runs the HTTP service: meeting uploads, status queries,
// and SSE progress streams.
func newServeCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transcription HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logger.New(&cfg.Logging, cfg.Name)
			log.Info("Backends configured", map[string]interface{}{
				"backend":        cfg.Backend,
				"no_diarization": cfg.NoDiarization,
				"hf_token":       util.MaskSecret(cfg.Pyannote.AuthToken, 4),
			})

			if cfg.Tracing.Endpoint != "" {
				tp, err := observability.InitTracer(ctx, cfg.Tracing)
				if err != nil {
					return err
				}
				defer func() { _ = tp.Shutdown(context.Background()) }()
			}

			mgr, err := newTranscriptionManager(cfg)
			if err != nil {
				return err
			}
			transcriber, err := mgr.Get(ctx)
			if err != nil {
				return err
			}
			diarizer := newDiarizer(cfg)
			normalizer := media.NewNormalizer(cfg.Media)
			extractor := media.NewExtractor(cfg.Media)

			pcfg := cfg.Pipeline
			pcfg.WholeFile = cfg.NoDiarization

			process := func(ctx context.Context, inputPath string, notifier meeting.Notifier) (*meeting.Result, error) {
				p := meeting.NewPipeline(pcfg, normalizer, extractor, diarizer, transcriber, notifier)
				return p.Process(ctx, inputPath)
			}

			hub := sse.NewHub()
			go hub.Run()
			defer hub.Stop()

			st := store.New()
			api := server.NewAPI(st, hub, process, log)

			srv := server.New(cfg.Server, log)
			srv.RegisterDefaultEndpoints(cfg.Name, version.GetShortVersion(), func(ctx context.Context) []observability.Health {
				return []observability.Health{
					observability.CheckAvailability(ctx, diarizer),
					observability.CheckAvailability(ctx, transcriber),
				}
			})
			api.Register(srv.GinEngine())

			if err := srv.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			return srv.Stop(context.Background())
		},
	}
}
