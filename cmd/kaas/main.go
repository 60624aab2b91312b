package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/mohammad8186/Kubernetes-as-a-Service/internal/adapter/http"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/adapter/kubernetes"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/adapter/repository"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/config"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/port"
	"github.com/mohammad8186/Kubernetes-as-a-Service/internal/service"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "kaas",
		Usage: "Deploy applications and PostgreSQL instances onto a Kubernetes cluster over HTTP",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Flags:  serveFlags(),
				Action: serve,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("kaas exited", "error", err)
		os.Exit(1)
	}
}

// serveFlags 的每个参数都对应一个环境变量，显式传入时覆盖环境变量。
func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "port", Usage: "HTTP listen port (HTTP_PORT)"},
		&cli.StringFlag{Name: "kubeconfig", Usage: "path to kubeconfig, empty for in-cluster (KUBECONFIG)"},
		&cli.StringFlag{Name: "namespace", Usage: "namespace resources are created in (DEPLOY_NAMESPACE)"},
		&cli.StringFlag{Name: "database-url", Usage: "sqlite file or postgres DSN for history, empty disables it (DATABASE_URL)"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (LOG_LEVEL)"},
		&cli.StringSliceFlag{Name: "exclude", Usage: "workload names hidden from /status/all (EXCLUDED_WORKLOADS)"},
		&cli.IntFlag{Name: "status-concurrency", Usage: "max concurrent pod listings (STATUS_CONCURRENCY)"},
		&cli.DurationFlag{Name: "platform-timeout", Usage: "timeout for each cluster call (PLATFORM_TIMEOUT)"},
		&cli.StringFlag{Name: "postgres-conf", Usage: "postgresql.conf template path (POSTGRES_CONF_PATH)"},
		&cli.StringFlag{Name: "datastore-profile", Usage: "optional YAML datastore profile (DATASTORE_PROFILE)"},
	}
}

// loadConfig 以环境变量为底，命令行显式传入的参数覆盖之。
func loadConfig(cmd *cli.Command) *config.Config {
	cfg := config.Load()
	if cmd.IsSet("port") {
		cfg.HTTPPort = cmd.String("port")
	}
	if cmd.IsSet("kubeconfig") {
		cfg.KubeconfigPath = cmd.String("kubeconfig")
	}
	if cmd.IsSet("namespace") {
		cfg.DeployNamespace = cmd.String("namespace")
	}
	if cmd.IsSet("database-url") {
		cfg.DatabaseURL = cmd.String("database-url")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("exclude") {
		cfg.ExcludedWorkloads = cmd.StringSlice("exclude")
	}
	if cmd.IsSet("status-concurrency") && cmd.Int("status-concurrency") > 0 {
		cfg.StatusConcurrency = cmd.Int("status-concurrency")
	}
	if cmd.IsSet("platform-timeout") && cmd.Duration("platform-timeout") > 0 {
		cfg.PlatformTimeout = cmd.Duration("platform-timeout")
	}
	if cmd.IsSet("postgres-conf") {
		cfg.PostgresConfPath = cmd.String("postgres-conf")
	}
	if cmd.IsSet("datastore-profile") {
		cfg.DatastoreProfile = cmd.String("datastore-profile")
	}
	return cfg
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg := loadConfig(cmd)
	setupLogger(cfg.LogLevel)

	// 部署历史（可选）
	var records port.RecordRepository
	if cfg.DatabaseURL != "" {
		db, err := repository.OpenDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		records = repository.NewRecordRepo(db)
	} else {
		slog.Info("deployment history disabled")
	}

	profile, err := config.LoadDatastoreProfile(cfg.DatastoreProfile)
	if err != nil {
		return err
	}

	// K8s 客户端
	cs, err := kubernetes.NewClientset(cfg.KubeconfigPath)
	if err != nil {
		return fmt.Errorf("k8s client: %w", err)
	}
	platform := kubernetes.NewKubePlatform(cs, cfg.DeployNamespace, cfg.PlatformTimeout)

	// 服务层
	deploySvc := service.NewDeployService(service.NewOrchestrator(platform), records, service.DeployConfig{
		Namespace:        cfg.DeployNamespace,
		Profile:          profile,
		PostgresConfPath: cfg.PostgresConfPath,
	})
	statusSvc := service.NewStatusService(platform, cfg.ExcludedWorkloads, cfg.StatusConcurrency)

	// HTTP 路由
	handler := httpadapter.NewRouter(
		httpadapter.NewDeployHandler(deploySvc),
		httpadapter.NewStatusHandler(statusSvc),
		cfg.APIToken,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "namespace", cfg.DeployNamespace)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	return nil
}
