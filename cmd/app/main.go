package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dzdelivery/cmd"
	dzhttp "dzdelivery/internal/adapters/in/http"
	"dzdelivery/internal/adapters/out/postgres/courierrepo"
	"dzdelivery/internal/adapters/out/postgres/demandrepo"
	"dzdelivery/internal/adapters/out/postgres/orderrepo"
	"dzdelivery/internal/adapters/out/postgres/pricingrepo"
	"dzdelivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)
	redisClient := openRedis(configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := jobs.NewJobManager(
		app.CreateAssignCourierCommandHandler(),
		app.CreateSampleDemandCommandHandler(),
		configs.AssignmentCron,
		configs.SamplingCron,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// A missing .env is fine in containers where the environment is set
	// directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         envOrDefault("DB_HOST", "localhost"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         envOrDefault("DB_USER", "postgres"),
		DBPassword:     envOrDefault("DB_PASSWORD", "postgres"),
		DBName:         envOrDefault("DB_NAME", "dzdelivery"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:      envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AssignmentCron: envOrDefault("ASSIGNMENT_CRON", "*/30 * * * * *"),
		SamplingCron:   envOrDefault("SAMPLING_CRON", "0 */5 * * * *"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusChangeDTO{},
		&courierrepo.CourierDTO{},
		&pricingrepo.ConfigDTO{},
		&pricingrepo.ZoneDTO{},
		&pricingrepo.TimeRuleDTO{},
		&pricingrepo.WeatherRuleDTO{},
		&pricingrepo.DemandRuleDTO{},
		&pricingrepo.CalculationDTO{},
		&demandrepo.SnapshotDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := pricingrepo.Seed(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed pricing tables: %v", err)
	}

	return db
}

func openRedis(configs cmd.Config, logger *slog.Logger) redis.UniversalClient {
	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		// The weather provider degrades to uncached simulation without
		// redis, so the service still comes up.
		logger.Warn("redis unreachable, weather caching disabled", "addr", configs.RedisAddr, "error", err)
		return nil
	}

	return client
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := dzhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateCalculatePriceQueryHandler(),
		app.CreateGetCurrentDemandQueryHandler(),
		app.CreateDemandTrendsQueryHandler(),
		app.CreatePeakHoursQueryHandler(),
		app.CreatePredictDemandQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := e.Shutdown(context.Background()); err != nil {
		e.Logger.Fatal(err)
	}
}
