package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/vidlingo/config"
	"github.com/bnema/vidlingo/internal/adapter/blob/localfs"
	"github.com/bnema/vidlingo/internal/adapter/blob/s3store"
	"github.com/bnema/vidlingo/internal/adapter/converter/ffmpeg"
	"github.com/bnema/vidlingo/internal/adapter/ingest/ytdlp"
	"github.com/bnema/vidlingo/internal/adapter/provider/apiclient"
	"github.com/bnema/vidlingo/internal/adapter/provider/azuretts"
	"github.com/bnema/vidlingo/internal/adapter/provider/ollama"
	"github.com/bnema/vidlingo/internal/adapter/provider/openai"
	"github.com/bnema/vidlingo/internal/adapter/queue/amqpq"
	"github.com/bnema/vidlingo/internal/adapter/queue/redisq"
	"github.com/bnema/vidlingo/internal/adapter/storage/jsonfile"
	"github.com/bnema/vidlingo/internal/adapter/storage/sqlstore"
	"github.com/bnema/vidlingo/internal/domain"
	"github.com/bnema/vidlingo/internal/infrastructure/logger"
	"github.com/bnema/vidlingo/internal/port"
	"github.com/bnema/vidlingo/internal/service"
)

// app holds the adapters selected by configuration.
type app struct {
	cfg     *config.Config
	store   port.JobStore
	sql     *sqlstore.Store
	queue   port.WorkQueue
	events  *service.EventBus
	closers []func() error
}

// openApp connects the job store and the work queue. Provider adapters are
// only built by the commands that run jobs.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	a := &app{cfg: cfg, events: service.NewEventBus()}
	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openQueue(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.StoreDriver() {
	case config.StoreJSON:
		store, err := jsonfile.NewStore(a.cfg.JSONPath())
		if err != nil {
			return fmt.Errorf("open json store: %w", err)
		}
		a.store = store
		logger.Info.Printf("job store: json file in %s", a.cfg.JSONPath())
		return nil
	case config.StorePostgres:
		store, err := sqlstore.OpenPostgres(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		a.sql = store
		logger.Info.Printf("job store: postgres")
	default:
		store, err := sqlstore.OpenSQLite(a.cfg.SQLitePath())
		if err != nil {
			return err
		}
		a.sql = store
		logger.Info.Printf("job store: sqlite at %s", a.cfg.SQLitePath())
	}

	a.closers = append(a.closers, a.sql.Close)
	a.store = a.sql
	return a.sql.Migrate(ctx)
}

func (a *app) openQueue(ctx context.Context) error {
	switch a.cfg.QueueBackend {
	case config.QueueRedis:
		client, err := redisq.Connect(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.queue = redisq.New(client, a.cfg.QueueName, redisq.WithLease(a.cfg.QueueLease))
	case config.QueueAMQP:
		q, err := amqpq.Dial(a.cfg.AMQPURL, a.cfg.QueueName)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, q.Close)
		a.queue = q
	default:
		if a.sql == nil {
			return fmt.Errorf("%w: the sql queue needs a sqlite or postgres store", domain.ErrConfiguration)
		}
		a.queue = sqlstore.NewQueue(a.sql, sqlstore.WithLease(a.cfg.QueueLease))
	}
	logger.Info.Printf("work queue: %s (%s)", a.cfg.QueueBackend, a.cfg.QueueName)
	return nil
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn.Printf("close: %v", err)
		}
	}
	a.closers = nil
}

func (a *app) jobService() *service.JobService {
	return service.NewJobService(a.store, a.queue)
}

// artifactStore returns the configured store. The second value is non-nil
// only for local storage, which the HTTP server can serve directly.
func (a *app) artifactStore() (port.ArtifactStore, *localfs.Store, error) {
	if a.cfg.BlobBackend == config.BlobS3 {
		s3, err := s3store.New(s3store.Config{
			Bucket:    a.cfg.S3.Bucket,
			Region:    a.cfg.S3.Region,
			Endpoint:  a.cfg.S3.Endpoint,
			AccessKey: a.cfg.S3.AccessKey,
			SecretKey: a.cfg.S3.SecretKey,
			PathStyle: a.cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return s3, nil, nil
	}
	local := localfs.New(a.cfg.DataDir, a.cfg.PublicBaseURL)
	return local, local, nil
}

func (a *app) pipeline(artifacts port.ArtifactStore) *service.Pipeline {
	cfg := a.cfg
	transport := apiclient.New()

	oa := openai.NewClient(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		TranscribeModel: cfg.TranscribeModel,
		TranslateModel:  cfg.TranslateModel,
	}, transport)

	var translator port.TextTranslator = oa
	if cfg.TranslateProvider == config.TranslateOllama {
		translator = ollama.NewTranslator(cfg.OllamaURL, cfg.OllamaModel, transport)
	}

	toolkit := ffmpeg.NewToolkit(ffmpeg.WithBinaries(cfg.FFmpegPath, cfg.FFprobePath))
	stages := service.Stages{
		Ingester:    service.NewIngester(ytdlp.NewSource(cfg.YtDlpPath, toolkit, nil), cfg.StageTimeout),
		Transcriber: service.NewTranscriber(oa, cfg.StageTimeout),
		Translator:  service.NewTranslator(translator, cfg.StageTimeout),
		Dubber: service.NewDubber(
			azuretts.NewSynthesizer(cfg.AzureTTSKey, cfg.AzureTTSRegion, transport),
			toolkit,
			cfg.StageTimeout,
		),
	}
	logger.Info.Printf("providers: transcribe=openai/%s translate=%s", cfg.TranscribeModel, cfg.TranslateProvider)

	return service.NewPipeline(a.store, artifacts, stages, a.events, cfg.DataDir)
}

func (a *app) dispatcher(runner service.JobRunner) *service.Dispatcher {
	cfg := a.cfg
	return service.NewDispatcher(a.queue, runner, service.DispatcherConfig{
		Workers:       cfg.Workers,
		RateLimit:     cfg.RateLimitMax,
		RateWindow:    cfg.RateLimitWindow,
		Retry:         cfg.RetryPolicy(),
		MaxBackoff:    cfg.BackoffMax,
		Retention:     cfg.RetentionPolicy(),
		PruneInterval: cfg.PruneInterval,
		Lease:         cfg.QueueLease,
	})
}
