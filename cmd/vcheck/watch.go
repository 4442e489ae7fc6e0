package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ib-77/validated/internal/settings"
	"github.com/ib-77/validated/pkg/reactive"
	"github.com/ib-77/validated/pkg/reactive/reactivemetrics"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		configPath  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate a settings file every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := settings.NewViper(configPath, settings.EnvPrefix)
			if err != nil {
				return err
			}
			raw, err := settings.Decode(v)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			recorder, err := reactivemetrics.NewRecorder(reg)
			if err != nil {
				return err
			}

			live := settings.NewLive(raw,
				reactive.WithName("settings"),
				reactive.WithLogger(a.logger),
				reactive.WithHooks(recorder.Hooks()),
			)
			defer live.Close()

			logReport(a.logger, live.Report())
			sub := live.OnChange(func(r settings.Report) { logReport(a.logger, r) })
			defer sub.Cancel()

			v.OnConfigChange(func(e fsnotify.Event) {
				a.logger.Debug("settings file changed", "file", e.Name, "op", e.Op.String())
				reload(a.logger, v, live)
			})
			v.WatchConfig()

			if metricsAddr != "" {
				return serveMetrics(cmd.Context(), a.logger, metricsAddr, reg)
			}
			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings file to watch")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// reload decodes the file viper just re-read. A file that fails to decode
// keeps the previous settings.
func reload(logger *slog.Logger, v *viper.Viper, live *settings.Live) {
	raw, err := settings.Decode(v)
	if err != nil {
		logger.Warn("ignoring settings change", "error", err)
		return
	}
	live.Update(raw)
}

func logReport(logger *slog.Logger, r settings.Report) {
	if r.Valid {
		logger.Info("settings valid", "name", r.Settings.Name, "addr", r.Settings.Addr)
		return
	}
	for _, p := range r.Problems {
		logger.Warn("settings invalid", "field", p.Field, "reason", p.Reason)
	}
}

func serveMetrics(ctx context.Context, logger *slog.Logger, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}
