package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hirecanvas/hirecanvas/internal/builder/controller"
	"github.com/hirecanvas/hirecanvas/internal/builder/db"
	"github.com/hirecanvas/hirecanvas/internal/builder/events"
	"github.com/hirecanvas/hirecanvas/internal/builder/handlers"
	"github.com/hirecanvas/hirecanvas/internal/builder/web"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config struct for YAML configuration
type Config struct {
	HTTPPort     int      `yaml:"HTTP_PORT"`
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	JWTSecret    string   `yaml:"JWT_SECRET"`
	Topic        string   `yaml:"TOPIC"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := db.NewRepository(initDatabase(cfg))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	builderSvc := controller.NewBuilderService(repo, producer, logger)

	restHandler := handlers.NewRestHandler(builderSvc, logger)
	pageHandler, err := web.NewPageHandler(builderSvc, logger)
	if err != nil {
		logger.Fatal("failed to load page templates", zap.Error(err))
	}

	server := handlers.NewServer(cfg.HTTPPort, cfg.JWTSecret, logger)
	restHandler.Register(server.Router())
	pageHandler.Register(server.Router())

	// Audit trail of everything published on the topic.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer := events.NewConsumer(cfg.KafkaBrokers, "careers-audit", cfg.Topic, logger)
	consumer.RegisterHandler(func(_ context.Context, ev events.Event) error {
		logger.Info("domain event", zap.String("event_type", string(ev.Type)))
		return nil
	})
	consumer.Start(ctx)
	defer consumer.Close()

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig loads configuration. Use real config tooling (e.g. Viper) in production.
func loadConfig() (*Config, error) {
	configPath := filepath.Join("internal", "builder", "config", "config.yaml")
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// initDatabase initializes the database connection settings.
func initDatabase(cfg *Config) *db.Config {
	return &db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
