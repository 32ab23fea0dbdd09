package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	recordcmd "checkin/cmd/server/cmd/record"
	"checkin/internal/app/server/api"
	"checkin/internal/app/server/web"
	"checkin/internal/config"
	"checkin/internal/domain/record"
	"checkin/internal/domain/view"
	"checkin/internal/infrastructure/upstream"
	"checkin/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	cfgFile  string
	addr     string
	upstrURL string
	resource string
)

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check-in portal: look up a record by id and update its status once",
	Long: `checkin serves a small web interface. GET /{id} shows the record that the
remote service holds for that id, and a single button reports the status
update back to the service.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP сервера, например :8080")
	rootCmd.PersistentFlags().StringVar(&upstrURL, "upstream", "", "базовый URL внешнего сервиса записей")
	rootCmd.PersistentFlags().StringVar(&resource, "resource", "", "имя ресурса во внешнем сервисе")

	rootCmd.AddCommand(recordcmd.NewRecordCmd(openRecords))
}

// openRecords строит сервис записей для команд без HTTP сервера.
// Логи уходят в stderr, чтобы не смешиваться с выводом команды.
func openRecords(cmd *cobra.Command) (record.Servicer, string, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	applyFlags(cfg)

	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	client, err := upstream.New(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Resource: cfg.Upstream.Resource,
		Timeout:  cfg.Upstream.Timeout,
	}, log)
	if err != nil {
		return nil, "", err
	}

	return record.NewService(client, log), cfg.View.ActionableStatus, nil
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	applyFlags(cfg)

	log := logger.New(cfg.Env, cfg.Logger.LogLevel)

	client, err := upstream.New(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Resource: cfg.Upstream.Resource,
		Timeout:  cfg.Upstream.Timeout,
	}, log)
	if err != nil {
		return err
	}

	store := view.NewStore(cfg.View.TTL, cfg.View.MaxEntries)
	records := record.NewService(client, log)
	views := view.NewService(records, store, cfg.View.ActionableStatus, log)

	router, err := api.New(views, store, api.Options{
		Sentinel: cfg.View.ActionableStatus,
		Theme:    web.DefaultTheme(),
		HideDocs: cfg.IsProd(),
	}, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("upstream", cfg.Upstream.BaseURL),
			slog.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return store.Run(gctx, cfg.View.SweepInterval, func(removed int) {
			log.Debug("expired views removed", slog.Int("count", removed))
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

// applyFlags переопределяет настройки из флагов командной строки
func applyFlags(cfg *config.Config) {
	if addr != "" {
		cfg.Server.RunAddress = addr
	}
	if upstrURL != "" {
		cfg.Upstream.BaseURL = upstrURL
	}
	if resource != "" {
		cfg.Upstream.Resource = resource
	}
}
