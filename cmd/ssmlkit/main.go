package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/pitabwire/frame"
	"github.com/pitabwire/frame/config"

	ssmlconfig "github.com/voicetyped/ssmlkit/config"
	"github.com/voicetyped/ssmlkit/internal/connectutil"
	"github.com/voicetyped/ssmlkit/internal/render"
	renderhandler "github.com/voicetyped/ssmlkit/internal/render/handler"
	"github.com/voicetyped/ssmlkit/pkg/events"
	"github.com/voicetyped/ssmlkit/pkg/preset"
	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadWithOIDC[ssmlconfig.SSMLConfig](ctx)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	eventRef := cfg.GetEventsQueueName()
	eventURL := cfg.GetEventsQueueURL()

	ctx, srv := frame.NewService(
		frame.WithConfig(&cfg),
		frame.WithName("ssmlkit"),
		frame.WithRegisterServerOauth2Client(),
		frame.WithRegisterPublisher(eventRef, eventURL),
	)
	defer srv.Stop(ctx)

	pool, err := srv.WorkManager().GetPool()
	if err != nil {
		log.Fatalf("getting worker pool: %v", err)
	}

	authenticator := srv.SecurityManager().GetAuthenticator(ctx)

	var pub *events.Publisher
	if cfg.EmitRenderEvents {
		pub = events.NewPublisher(srv.QueueManager(), "ssmlkit", eventRef)
	} else {
		pub = events.NewLocalPublisher("ssmlkit")
	}

	loader := preset.NewLoader(cfg.PresetDir)
	if _, err := loader.LoadAll(); err != nil {
		log.Printf("warning: loading presets: %v", err)
	}
	loader.OnReload(func(names []string, err error) {
		data := events.PresetsReloadedData{Dir: loader.Dir(), Presets: names}
		if err != nil {
			data.Error = err.Error()
		}
		if emitErr := pub.Emit(ctx, events.PresetsReloaded, "", data); emitErr != nil {
			slog.WarnContext(ctx, "failed to emit reload event", slog.String("error", emitErr.Error()))
		}
	})
	if cfg.PresetWatch {
		go func() {
			if err := loader.WatchAndReload(ctx); err != nil {
				slog.ErrorContext(ctx, "preset watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	opts := []render.Option{
		render.WithPresets(loader),
		render.WithPool(pool),
		render.WithMaxBatch(cfg.BatchMaxFragments),
	}
	if cfg.EmitRenderEvents {
		opts = append(opts, render.WithPublisher(pub))
	}
	svc := render.NewService(ssml.NewBuilder(cfg.BuilderOptions()...), opts...)

	mux := http.NewServeMux()
	rpcOpts, err := connectutil.AuthenticatedOptions(ctx, authenticator)
	if err != nil {
		log.Fatalf("setting up auth interceptors: %v", err)
	}
	path, hdlr := renderhandler.NewRPCHandler(svc, rpcOpts...)
	mux.Handle(path, hdlr)

	restMux := http.NewServeMux()
	renderhandler.NewHandler(svc, cfg.MaxRequestBodyBytes).RegisterRoutes(restMux)
	mux.Handle("/api/", connectutil.AuthenticatedHTTPMiddleware(restMux, authenticator))

	srv.Init(ctx, frame.WithHTTPHandler(connectutil.H2CHandler(mux)))

	if err := srv.Run(ctx, ""); err != nil {
		log.Fatalf("service exited: %v", err)
	}
}
