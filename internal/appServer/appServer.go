package appServer

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eboniejc/muse-app/config"
	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	redisrepo "github.com/eboniejc/muse-app/internal/database/redis"
	"github.com/eboniejc/muse-app/internal/service"
	"github.com/eboniejc/muse-app/internal/transport"
	"github.com/eboniejc/muse-app/internal/worker"

	"github.com/eboniejc/muse-app/pkg/mailer"
	"github.com/eboniejc/muse-app/pkg/onesignal"
	"github.com/eboniejc/muse-app/pkg/postgres"
	"github.com/eboniejc/muse-app/pkg/rabbitmq"
	"github.com/eboniejc/muse-app/pkg/redis"
	"github.com/eboniejc/muse-app/pkg/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logger := logrus.StandardLogger()

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	scheduleRepo := repository.NewLessonScheduleRepository(db)
	completionRepo := repository.NewLessonCompletionRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewRoomBookingRepository(db)
	ebookRepo := repository.NewEbookRepository(db)
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	sheetsRepo := repository.NewSheetsRepository(db)

	// Catalog cache, optional
	var cache service.CatalogCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.Errorf("Failed to connect to Redis: %v. Continuing without cache...", err)
		} else {
			defer redisClient.Close()
			cache = redisrepo.NewCacheRepository(redisClient, cfg.App.CacheTTL)
		}
	}

	// Registration task queue, optional
	var queue rabbitmq.Queue
	if cfg.RabbitMQ.Enabled {
		rmq, err := rabbitmq.NewRabbitMQ(rabbitmq.Config{
			URL:       cfg.RabbitMQ.URL,
			QueueName: cfg.RabbitMQ.QueueName,
		})
		if err != nil {
			logrus.Errorf("Failed to connect to RabbitMQ: %v. Registration emails go inline...", err)
		} else {
			defer rmq.Close()
			queue = rmq
			logrus.Info("RabbitMQ queue initialized")
		}
	}

	// Push gateway
	pushClient := onesignal.NewClient(cfg.OneSignal.AppID, cfg.OneSignal.RestAPIKey, cfg.OneSignal.Timeout)
	pushGateway := service.NewOneSignalGateway(pushClient)
	if cfg.OneSignal.AppID == "" {
		logrus.Warn("OneSignal credentials not provided, lesson reminders will not be delivered")
	}

	sgMailer := mailer.NewSendGridMailer(cfg.SendGrid.APIKey, cfg.SendGrid.SenderName, cfg.SendGrid.SenderEmail)

	// Services
	reconcileService := service.NewReconcileService(scheduleRepo, enrollmentRepo, pushGateway, logger)
	sheetsService := service.NewSheetsService(sheetsRepo, reconcileService, cache, logger)
	courseService := service.NewCourseService(courseRepo, cache, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, completionRepo, courseRepo)
	bookingService := service.NewBookingService(roomRepo, bookingRepo, userRepo, logger)
	ebookService := service.NewEbookService(ebookRepo, enrollmentRepo, completionRepo, cache, logger)
	lessonService := service.NewLessonService(scheduleRepo)
	instructorService := service.NewInstructorService(userRepo)
	eventService := service.NewEventService(eventRepo)
	registrationService := service.NewRegistrationService(queue, sgMailer, cfg.SendGrid.OfficeEmail, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if queue != nil {
		if err := queue.Consume(ctx, func(payload []byte) error {
			return registrationService.HandleRegistrationTask(ctx, payload)
		}); err != nil {
			logrus.Errorf("Queue consumer error: %v", err)
		} else {
			logrus.Info("Registration email consumer started")
		}
	}

	// Background upkeep
	bookingSweep := scheduler.NewScheduler("booking-sweep", cfg.Worker.BookingSweepInterval, bookingService.CompletePastBookings)
	go bookingSweep.Start(ctx)

	if cache != nil {
		warmWorker := worker.NewCatalogWarmWorker(courseService, cache, cfg.Worker.CacheWarmInterval)
		go warmWorker.Start(ctx)
	}

	// Handlers
	courseHandler := transport.NewCourseHandler(courseService, enrollmentService)
	bookingHandler := transport.NewBookingHandler(bookingService)
	ebookHandler := transport.NewEbookHandler(ebookService)
	lessonHandler := transport.NewLessonHandler(lessonService)
	instructorHandler := transport.NewInstructorHandler(instructorService)
	eventHandler := transport.NewEventHandler(eventService)
	adminHandler := transport.NewAdminHandler(enrollmentService)
	sheetsHandler := transport.NewSheetsHandler(sheetsService)
	registrationHandler := transport.NewRegistrationHandler(registrationService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transport.InitRoutes(
		courseHandler,
		bookingHandler,
		ebookHandler,
		lessonHandler,
		instructorHandler,
		eventHandler,
		adminHandler,
		sheetsHandler,
		registrationHandler,
		transport.Keys{
			SheetsAPIKey: cfg.Sheets.APIKey,
			AdminAPIKey:  cfg.App.AdminAPIKey,
		},
		cfg.Server.Timeout,
	)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
