package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"voicevoxcore/internal/config"
	"voicevoxcore/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

// serve runs the diagnostics server until ctx is done.
func serve(ctx context.Context, cfg config.Config, svc httpapi.Service, log zerolog.Logger) error {
	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, []string{"Content-Type", "X-Log-Level"})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("library", cfg.Library).Msg("voicevoxctl listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
		return err
	}
	log.Info().Msg("voicevoxctl stopped")
	return nil
}
