package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sushihentaime/inkpost/internal/blogservice"
	"github.com/sushihentaime/inkpost/internal/common"
	"github.com/sushihentaime/inkpost/internal/mailservice"
	"github.com/sushihentaime/inkpost/internal/uploadservice"
	"github.com/sushihentaime/inkpost/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	uploadService *uploadservice.UploadService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.MigrationsPath != "" {
		dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		if _, err := common.Migrate(cfg.MigrationsPath, dsn); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	broker, err := common.NewMessageBroker(cfg.rabbitURI())
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	presigner, err := uploadservice.NewPresigner(context.Background(), uploadservice.Config{
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		logger.Error("failed to setup object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(cfg.LatestBlogsTTL, 2*cfg.LatestBlogsTTL)
	tokens := userservice.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	app := &application{
		config:        cfg,
		logger:        logger,
		userService:   userservice.NewUserService(db, broker, tokens, logger, cfg.DefaultProfileImg),
		blogService:   blogservice.NewBlogService(db, cache, logger),
		uploadService: uploadservice.NewUploadService(presigner, cfg.S3Bucket, cfg.UploadURLTTL, logger),
	}

	mailService := mailservice.NewMailService(broker, mailservice.SMTPConfig{
		Host:       cfg.MailHost,
		Port:       cfg.MailPort,
		Username:   cfg.MailUser,
		Password:   cfg.MailPassword,
		Sender:     cfg.MailSender,
		RatePerSec: cfg.MailRatePerSec,
	}, logger)

	if err := mailService.SendWelcomeEmail(); err != nil {
		logger.Error("failed to start the welcome mailer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer mailService.Close()

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
