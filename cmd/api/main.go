package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"wtwr-api/internal/core/auth"
	"wtwr-api/internal/core/cache"
	"wtwr-api/internal/core/config"
	"wtwr-api/internal/core/database"
	"wtwr-api/internal/core/logger"
	"wtwr-api/internal/core/server"
	"wtwr-api/internal/core/storage"
	"wtwr-api/internal/domain"
	"wtwr-api/internal/messaging/rabbitmq"
	"wtwr-api/internal/repo"
	"wtwr-api/internal/service"
	"wtwr-api/internal/transport/http/handler"
	mdw "wtwr-api/internal/transport/http/middleware"
	"wtwr-api/internal/transport/http/router"
	"wtwr-api/internal/upload"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	ctx := context.Background()

	// 事件
	var events domain.EventPublisher = domain.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("rabbitmq connect", zap.Error(err))
		}
		defer pub.Close()
		events = pub
	}

	// 服务
	users := service.NewUserService(repo.NewUserRepo(db), cfg.Policy.CascadeUserDelete)
	var items domain.ItemService = service.NewItemService(repo.NewItemRepo(db), events, log,
		service.ItemOptions{OwnerOnlyDelete: cfg.Policy.OwnerOnlyDelete})
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := c.Ping(ctx); err != nil {
			log.Fatal("redis ping", zap.Error(err))
		}
		defer c.Close()
		cached := service.NewCachedItemService(items, c, time.Duration(cfg.Redis.TTLSec)*time.Second, log)
		users.OnItemsChanged(cached.Invalidate)
		items = cached
		log.Info("item list cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 上传存储
	store := mustOpenStore(ctx, cfg, log)
	ingest := upload.NewIngestor(store, cfg.Upload.MaxBytes)

	r := router.NewAPIEngine(router.Deps{
		Log:    log,
		Mode:   ginMode(cfg.App.Env),
		Caller: caller(cfg, log),
		Limits: router.Limits{
			RPS:           cfg.Limits.RPS,
			Burst:         cfg.Limits.Burst,
			PerIP:         cfg.Limits.PerIP,
			MaxConcurrent: cfg.Limits.MaxConcurrent,
			MaxBodyBytes:  cfg.Limits.MaxBodyBytes,
			Timeout:       time.Duration(cfg.Limits.TimeoutSec) * time.Second,
		},
		Modules: []router.APIModule{
			handler.NewItemHandler(items, ingest, log),
			handler.NewUserHandler(users),
			handler.NewUploadHandler(store),
		},
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("wtwr api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("items", baseURL+"/items"),
		zap.String("auth", cfg.Auth.Mode),
		zap.String("upload", cfg.Upload.Backend),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("wtwr api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(sctx)
	log.Info("wtwr api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

func mustOpenStore(ctx context.Context, cfg *config.Config, l *zap.Logger) storage.FileStore {
	if cfg.Upload.Backend == "s3" {
		s, err := storage.NewS3(ctx, storage.S3Options{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UseSSL:          cfg.S3.UseSSL,
		}, l)
		if err != nil {
			l.Fatal("s3 store", zap.Error(err))
		}
		return s
	}
	s, err := storage.NewLocal(cfg.Upload.Dir)
	if err != nil {
		l.Fatal("local store", zap.Error(err))
	}
	return s
}

func caller(cfg *config.Config, l *zap.Logger) gin.HandlerFunc {
	if cfg.Auth.Mode == "jwt" {
		return mdw.JWTCaller(&auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		})
	}
	l.Warn("auth mode fixed: every request acts as one user", zap.String("uid", cfg.Auth.FixedUserID))
	return mdw.FixedCaller(cfg.Auth.FixedUserID)
}

func ginMode(env string) string {
	if env == "prod" || env == "production" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}
