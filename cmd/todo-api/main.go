package main

import (
	"context"
	"database/sql"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"todo-api/configs"
	"todo-api/docs"
	"todo-api/internal/application/controller"
	"todo-api/internal/application/middleware"
	"todo-api/internal/application/processor"
	"todo-api/internal/application/schedule"
	"todo-api/internal/domain/gateway/api"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/kv"
	"todo-api/internal/domain/gateway/queue"
	"todo-api/internal/domain/gateway/session"
	"todo-api/internal/domain/usecase/folder"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/reminder"
	"todo-api/internal/domain/usecase/settings"
	"todo-api/internal/domain/usecase/stats"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/infra/aws"
	"todo-api/internal/infra/cache"
	"todo-api/internal/infra/database/gorm"
	"todo-api/internal/infra/database/sqlc"
	"todo-api/internal/infra/database/sqlite"
	"todo-api/pkg/http"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
	"todo-api/pkg/resource"
	"todo-api/pkg/sqlstore"
	"todo-api/pkg/sqs"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title todo-api
// @version 1.0
// @description Todo lists with folders, sub-todos, recurrence, trash and weekly statistics.
// @BasePath /todo-api
func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start", configs.Env.ApplicationName, configs.Env.Profile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := time.LoadLocation(resource.GetString("app.timezone"))
	if err != nil {
		log.Fatal("Invalid app.timezone", zap.Error(err))
	}

	// Init database
	store, dbHealthGateway, closeDB := openStore(ctx)
	defer closeDB()

	todoGateway := db.NewSQLCTodoGateway(store)
	folderGateway := db.NewSQLCFolderGateway(store)
	settingsGateway := db.NewSQLCSettingsGateway(store)

	// Init redis backed infra
	var (
		redisClient        *redis.Client
		guestStore         kv.KeyValueStore
		statsCache         stats.Cache
		cacheHealthGateway kv.HealthGateway
	)
	if resource.GetBool("app.redis.enabled") {
		redisClient, err = cache.NewRedisClient(ctx)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		guestStore = kv.NewRedisStore(redisClient)
		statsCache = redis.NewCache(redisClient, stats.CacheName)
		cacheHealthGateway = kv.NewRedisHealthGateway(redisClient)
	} else {
		guestStore = kv.NewMemoryStore()
		cacheHealthGateway = kv.MemoryHealthGateway{}
	}
	guestGateway := kv.NewMirrorTodoGateway(guestStore)

	// Init session
	var resolver session.Resolver = session.NewHeaderResolver()
	if resource.GetString("app.session.mode") == "redis" {
		if redisClient == nil {
			log.Fatal("app.session.mode=redis requires app.redis.enabled")
		}
		resolver = session.NewRedisResolver(redisClient)
	}
	if resource.GetBool("app.guest.enabled") {
		resolver = session.NewGuestResolver(resolver)
	}

	// Init UseCase
	statsUseCase := stats.NewStatsUseCase(todoGateway, guestGateway, statsCache, nil, location)
	eventProcessor := processor.NewTodoEventProcessor(statsUseCase)

	queueEnabled := resource.GetBool("app.queue.enabled")
	queueHealthGateway := queue.NewQueueHealthGateway(queueEnabled)
	var publisher queue.Publisher = queue.NewInProcessPublisher(eventProcessor)
	if queueEnabled {
		publisher = startTodoEventQueue(ctx, eventProcessor, queueHealthGateway)
	}

	todoUseCase := todo.NewTodoUseCase(todo.Gateways{
		Server: todoGateway,
		Guest:  guestGateway,
		Trash:  todoGateway,
	}, publisher, nil, location)
	folderUseCase := folder.NewFolderUseCase(folderGateway, nil)
	settingsUseCase := settings.NewSettingsUseCase(settingsGateway, nil)
	healthUseCase := health.NewHealthUseCase(dbHealthGateway, cacheHealthGateway, queueHealthGateway)

	// Init server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	middleware.SetupRequestLogger(e)

	docs.SwaggerInfo.Title = configs.Env.ApplicationName
	docs.SwaggerInfo.BasePath = configs.Env.ContextPath

	base := e.Group(configs.Env.ContextPath)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := base.Group("")
	secured.Use(middleware.Identity(resolver))
	if resource.GetBool("app.rate-limit.enabled") {
		if redisClient == nil {
			log.Fatal("app.rate-limit.enabled requires app.redis.enabled")
		}
		limiter, err := redis.NewRateLimiter(redisClient,
			redis.NewRateLimiterOptions(resource.GetInt("app.rate-limit.requests-per-minute")).WithWindow(time.Minute))
		if err != nil {
			log.Fatal("Invalid rate limiter configuration", zap.Error(err))
		}
		secured.Use(middleware.RateLimit(limiter))
	}

	// Init Controller
	controller.NewHealthController(base, healthUseCase).InitHealthRoutes()
	controller.NewTodoController(secured, todoUseCase).InitTodoRoutes()
	controller.NewFolderController(secured, folderUseCase).InitFolderRoutes()
	controller.NewStatsController(secured, statsUseCase).InitStatsRoutes()
	controller.NewSettingsController(secured, settingsUseCase).InitSettingsRoutes()

	// Init Schedule
	scheduler := schedule.NewScheduler(redisClient, location)
	retention := time.Duration(resource.GetInt("app.trash.retention-days")) * 24 * time.Hour
	if err := scheduler.AddJob(schedule.NewTrashPurgeJob(todoUseCase, resource.GetString("app.trash.purge-cron"), retention)); err != nil {
		log.Fatal("Failed to schedule trash purge", zap.Error(err))
	}
	if pushURL := resource.GetString("app.reminder.push-url"); pushURL != "" {
		var headers map[string]string
		if token := resource.GetString("app.reminder.push-token"); token != "" {
			headers = map[string]string{"Authorization": "Bearer " + token}
		}
		pushGateway := api.NewPushGateway(pushURL, resource.GetString("app.reminder.push-path"), http.ClientOptions{
			DefaultHeaders:    headers,
			ConnectionTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			Backoff: &http.BackoffConfig{
				MaxRetries:   2,
				InitialDelay: 200 * time.Millisecond,
				Multiplier:   2,
			},
			Logger: http.NewZapHTTPLogger(),
		})
		reminderUseCase := reminder.NewReminderUseCase(settingsGateway, todoGateway, pushGateway, nil, location)
		if err := scheduler.AddJob(schedule.NewReminderJob(reminderUseCase, resource.GetString("app.reminder.cron"))); err != nil {
			log.Fatal("Failed to schedule reminders", zap.Error(err))
		}
	} else {
		log.Info("Reminder push disabled, app.reminder.push-url is empty")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start Routes
	port := resource.GetString("app.server.port")
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", port))

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured driver and picks the matching health check
func openStore(ctx context.Context) (*sqlstore.Store, db.HealthDBGateway, func()) {
	var (
		conn    *sql.DB
		err     error
		dialect sqlstore.Dialect
	)

	switch driver := resource.GetString("app.db.driver"); driver {
	case "sqlite":
		conn, err = sqlite.Open(ctx, resource.GetString("app.db.sqlite-path"))
		dialect = sqlstore.SQLite
	case "postgres", "":
		conn, err = sqlc.Open(ctx)
		dialect = sqlstore.Postgres
	default:
		log.Fatalf("Unsupported app.db.driver %q", driver)
	}
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}

	store := sqlstore.New(conn, dialect)
	closeDB := func() { _ = conn.Close() }

	// gorm owns the postgres schema, sqlite applies its embedded one on open
	if dialect != sqlstore.Postgres || !resource.GetBool("app.db.migrate") {
		return store, db.NewSQLCHealthDBGateway(store), closeDB
	}

	gormDB, err := gorm.Open()
	if err != nil {
		log.Fatal("Failed to open gorm", zap.Error(err))
	}
	if err := gorm.Migrate(ctx, gormDB); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	return store, db.NewGormHealthDBGateway(gormDB), closeDB
}

// startTodoEventQueue publishes todo events to SQS and consumes them with a worker pool
func startTodoEventQueue(ctx context.Context, eventProcessor *processor.TodoEventProcessor, healthGateway *queue.QueueHealthGateway) queue.Publisher {
	cfg, err := aws.LoadConfig(ctx)
	if err != nil {
		log.Fatal("Failed to load AWS config", zap.Error(err))
	}
	client := aws.NewSqsClient(cfg)
	queueName := resource.GetString("app.queue.todo-events")

	worker, err := sqs.NewWorker(ctx, client, queueName, eventProcessor, &sqs.WorkerConfig{
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20,
		PoolSize:            resource.GetInt("app.queue.pool-size"),
	})
	if err != nil {
		log.Fatal("Failed to create todo event worker", zap.Error(err))
	}
	worker.Start(ctx)
	healthGateway.RegisterWorker("todo-events", worker)

	return queue.NewSQSPublisher(sqs.NewSender(client), queueName)
}
