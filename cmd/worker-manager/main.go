// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"workbridge-workers/internal/common/camunda"
	"workbridge-workers/internal/common/config"
	"workbridge-workers/internal/common/database"
	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/observability"
	"workbridge-workers/internal/common/profileapi"
	"workbridge-workers/internal/overlay"
	"workbridge-workers/internal/store"
	"workbridge-workers/pkg/registry"

	// Application Workers (1)
	sa "workbridge-workers/internal/workers/application/submit-application"

	// Recruitment Workers (8)
	ha "workbridge-workers/internal/workers/recruitment/hold-application"
	pi "workbridge-workers/internal/workers/recruitment/propose-interview"
	ra "workbridge-workers/internal/workers/recruitment/reconcile-applications"
	rj "workbridge-workers/internal/workers/recruitment/reject-application"
	ri "workbridge-workers/internal/workers/recruitment/respond-interview"
	sv "workbridge-workers/internal/workers/recruitment/save-applicant"
	sg "workbridge-workers/internal/workers/recruitment/send-acceptance-guide"
	uf "workbridge-workers/internal/workers/recruitment/update-first-work-date"

	// Profile, Search & Communication Workers (3)
	sn "workbridge-workers/internal/workers/communication/send-notification"
	fp "workbridge-workers/internal/workers/profile/fetch-seeker-profile"
	sj "workbridge-workers/internal/workers/search/search-jobs"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Validate Activity Registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("activity registry not loaded", zap.Error(err), zap.String("path", cfg.Registry.Path))
	} else {
		zapLog.Info("activity registry loaded", zap.Int("activities", len(reg.Activities)))
	}

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared Domain Services ---
	appStore := store.NewApplicationStore(pg, log)
	overlayTTL := time.Duration(cfg.Recruitment.OverlayTTLHours) * time.Hour
	overlayStore := overlay.NewRedisStore(redis, overlayTTL, log)
	reconciler := store.NewReconciler(appStore, overlayStore, log)
	profileClient := profileapi.NewClient(cfg.ProfileAPI)

	zapLog.Info("All domain services initialized")

	// --- START: Register ALL 12 Workers ---

	// --- 1. Application Workers (1) ---
	if cfg.Workers[sa.TaskType].Enabled {
		handler := sa.NewHandler(
			&sa.Config{
				Timeout: time.Duration(cfg.Workers[sa.TaskType].Timeout) * time.Millisecond,
			},
			appStore, log,
		)
		startWorker(zeebeClient, sa.TaskType, cfg.Workers[sa.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Recruitment Workers (8) ---
	if cfg.Workers[pi.TaskType].Enabled {
		handler := pi.NewHandler(
			&pi.Config{
				Timeout:       time.Duration(cfg.Workers[pi.TaskType].Timeout) * time.Millisecond,
				WindowDays:    cfg.Recruitment.InterviewWindowDays,
				OverlayPolicy: overlay.FailClosed,
			},
			appStore, overlayStore, log,
		)
		startWorker(zeebeClient, pi.TaskType, cfg.Workers[pi.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ri.TaskType].Enabled {
		handler := ri.NewHandler(
			&ri.Config{
				Timeout: time.Duration(cfg.Workers[ri.TaskType].Timeout) * time.Millisecond,
			},
			overlayStore, log,
		)
		startWorker(zeebeClient, ri.TaskType, cfg.Workers[ri.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sg.TaskType].Enabled {
		handler := sg.NewHandler(
			&sg.Config{
				Timeout:          time.Duration(cfg.Workers[sg.TaskType].Timeout) * time.Millisecond,
				DefaultDocuments: cfg.Recruitment.DefaultGuideDocuments,
				OverlayPolicy:    overlay.FailClosed,
			},
			appStore, overlayStore, log,
		)
		startWorker(zeebeClient, sg.TaskType, cfg.Workers[sg.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rj.TaskType].Enabled {
		handler := rj.NewHandler(
			&rj.Config{
				Timeout: time.Duration(cfg.Workers[rj.TaskType].Timeout) * time.Millisecond,
			},
			appStore, overlayStore, log,
		)
		startWorker(zeebeClient, rj.TaskType, cfg.Workers[rj.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ha.TaskType].Enabled {
		handler := ha.NewHandler(
			&ha.Config{
				Timeout: time.Duration(cfg.Workers[ha.TaskType].Timeout) * time.Millisecond,
			},
			appStore, log,
		)
		startWorker(zeebeClient, ha.TaskType, cfg.Workers[ha.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[uf.TaskType].Enabled {
		handler := uf.NewHandler(
			&uf.Config{
				Timeout:       time.Duration(cfg.Workers[uf.TaskType].Timeout) * time.Millisecond,
				OverlayPolicy: overlay.FailOpen,
			},
			overlayStore, log,
		)
		startWorker(zeebeClient, uf.TaskType, cfg.Workers[uf.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ra.TaskType].Enabled {
		handler := ra.NewHandler(
			&ra.Config{
				Timeout: time.Duration(cfg.Workers[ra.TaskType].Timeout) * time.Millisecond,
			},
			reconciler, log,
		)
		startWorker(zeebeClient, ra.TaskType, cfg.Workers[ra.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sv.TaskType].Enabled {
		handler := sv.NewHandler(
			&sv.Config{
				Timeout:       time.Duration(cfg.Workers[sv.TaskType].Timeout) * time.Millisecond,
				OverlayPolicy: overlay.FailClosed,
			},
			overlayStore, log,
		)
		startWorker(zeebeClient, sv.TaskType, cfg.Workers[sv.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Profile, Search & Communication Workers (3) ---
	if cfg.Workers[fp.TaskType].Enabled {
		handler := fp.NewHandler(
			&fp.Config{
				Timeout: time.Duration(cfg.Workers[fp.TaskType].Timeout) * time.Millisecond,
			},
			profileClient, log,
		)
		startWorker(zeebeClient, fp.TaskType, cfg.Workers[fp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sj.TaskType].Enabled {
		handler := sj.NewHandler(
			&sj.Config{
				Timeout:        time.Duration(cfg.Workers[sj.TaskType].Timeout) * time.Millisecond,
				JobIndex:       cfg.Search.JobIndex,
				DefaultPerPage: cfg.Search.DefaultPerPage,
				MaxPerPage:     cfg.Search.MaxPerPage,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, sj.TaskType, cfg.Workers[sj.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler, err := sn.NewHandler(
			&sn.Config{
				EmailEnabled: cfg.Notifications.Email.Enabled,
				SMSEnabled:   cfg.Notifications.SMS.Enabled,
				FromEmail:    cfg.Notifications.Email.FromEmail,
				AWSRegion:    cfg.Notifications.AWS.Region,
				Timeout:      time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("send-notification handler init failed", zap.Error(err))
		}
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 12 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
