// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-button-story/internal/bootstrap"
	"github.com/AccelByte/extend-button-story/internal/config"
	"github.com/AccelByte/extend-button-story/internal/server"
	actionBuiltin "github.com/AccelByte/extend-button-story/pkg/action/builtin"
	"github.com/AccelByte/extend-button-story/pkg/pipeline"
	"github.com/AccelByte/extend-button-story/pkg/session"
	"github.com/AccelByte/extend-button-story/pkg/store"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/iam"
	sdkAuth "github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/utils/auth"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App owns every long-lived component of the service.
type App struct {
	cfg               *config.Config
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	sessions          *session.Manager
	shutdownTelemetry func(context.Context) error

	// Shared by the IAM login and the platform-backed actions.
	configRepo *sdkAuth.ConfigRepositoryImpl
	tokenRepo  *sdkAuth.TokenRepositoryImpl
}

// New wires the service in dependency order: AccelByte auth, Redis, the
// reactions pipeline, the session manager, the servers and finally tracing.
// A failure at any step is returned and nothing is started.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")
	app := &App{cfg: cfg}

	if cfg.ABEnabled {
		if err := app.loginAccelByte(); err != nil {
			return nil, fmt.Errorf("failed to init AccelByte SDK: %w", err)
		}
	} else {
		logrus.Info("AccelByte integration disabled, platform actions only log")
	}

	redisClient, err := store.Connect(ctx, store.RedisConfig{
		Host:         cfg.RedisHost,
		Port:         cfg.RedisPort,
		Password:     cfg.RedisPassword,
		MaxRetries:   cfg.RedisMaxRetries,
		RetryDelayMs: cfg.RedisRetryDelayMs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	app.redisClient = redisClient

	storyTheme, err := bootstrap.InitTheme(cfg.ThemePath)
	if err != nil {
		return nil, err
	}

	reactions, err := app.buildPipeline()
	if err != nil {
		return nil, err
	}

	stateStore := store.NewRedisStateStore(app.redisClient, store.RedisStateStoreConfig{
		TTL:          cfg.StateTTL,
		SaveAttempts: cfg.StateSaveAttempts,
	})
	app.sessions = bootstrap.InitSessionManager(cfg, storyTheme, stateStore, reactions)

	if err := app.setupServers(); err != nil {
		return nil, err
	}

	if cfg.OtelEnabled {
		app.shutdownTelemetry, err = server.SetupTelemetry(server.TelemetryConfig{
			ServiceName:    cfg.OtelServiceName,
			Environment:    cfg.Environment,
			ZipkinEndpoint: cfg.OtelZipkinEndpoint,
			SampleRatio:    cfg.OtelSampleRatio,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
	}

	logrus.Info("application initialized")
	return app, nil
}

// buildPipeline loads config/pipeline.yaml and assembles
// Signals → Rules → Actions. The wiring is checked before any session can
// feed it.
func (a *App) buildPipeline() (*pipeline.Manager, error) {
	cfg := a.cfg
	pipelineConfig, err := pipeline.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline config from %s: %w", cfg.ConfigPath, err)
	}

	ruleEngine, ruleRegistry, err := bootstrap.InitRuleEngine(pipelineConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to init rule engine: %w", err)
	}

	deps := actionBuiltin.Dependencies{
		RedisClient: a.redisClient,
		Namespace:   cfg.ABNamespace,
	}
	if cfg.ABEnabled {
		deps.ItemGranter = actionBuiltin.NewAccelByteItemGranter(a.configRepo, a.tokenRepo)
		deps.StatIncrementer = actionBuiltin.NewAccelByteStatIncrementer(a.configRepo, a.tokenRepo)
	}
	actionExecutor, actionRegistry, err := bootstrap.InitActionExecutor(pipelineConfig, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to init action executor: %w", err)
	}

	if err := pipeline.ValidateWiring(ruleRegistry, actionRegistry, pipelineConfig); err != nil {
		return nil, err
	}

	processor := bootstrap.InitSignalProcessor(cfg.ABNamespace)
	return bootstrap.InitPipeline(processor, ruleEngine, actionExecutor, pipelineConfig), nil
}

func (a *App) setupServers() error {
	a.grpcServer = server.NewGRPCServer(a.cfg.GRPCPort, a.sessions)
	if err := a.grpcServer.Setup(); err != nil {
		return fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	healthChecker := store.NewHealthChecker(a.redisClient)
	a.metricsServer = server.NewMetricsServer(a.cfg.MetricsPort, "/metrics").WithHealthCheck(healthChecker.Check)
	if err := a.metricsServer.Setup(); err != nil {
		return fmt.Errorf("failed to setup metrics server: %w", err)
	}
	return nil
}

// loginAccelByte performs the IAM client-credentials login. AB_BASE_URL,
// AB_CLIENT_ID and AB_CLIENT_SECRET are read by the SDK's default config
// repository; the token refreshes itself at 80% of its lifetime.
func (a *App) loginAccelByte() error {
	a.configRepo = sdkAuth.DefaultConfigRepositoryImpl()
	a.tokenRepo = sdkAuth.DefaultTokenRepositoryImpl()

	oauth := iam.OAuth20Service{
		Client:                 factory.NewIamClient(a.configRepo),
		ConfigRepository:       a.configRepo,
		TokenRepository:        a.tokenRepo,
		RefreshTokenRepository: &sdkAuth.RefreshTokenImpl{AutoRefresh: true, RefreshRate: 0.8},
	}

	clientID := a.configRepo.GetClientId()
	clientSecret := a.configRepo.GetClientSecret()
	if err := oauth.LoginClient(&clientID, &clientSecret); err != nil {
		return fmt.Errorf("client login failed: %w", err)
	}

	logrus.WithField("namespace", a.cfg.ABNamespace).Info("AccelByte client authenticated")
	return nil
}
