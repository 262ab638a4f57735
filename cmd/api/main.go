package main

import (
	"fmt"

	"github.com/hotriluan/vuki-sub000/internal/config"
	"github.com/hotriluan/vuki-sub000/internal/domain/model"
	"github.com/hotriluan/vuki-sub000/internal/handler"
	"github.com/hotriluan/vuki-sub000/internal/infra/db"
	"github.com/hotriluan/vuki-sub000/internal/infra/logger"
	infraRepo "github.com/hotriluan/vuki-sub000/internal/infra/repository"
	"github.com/hotriluan/vuki-sub000/internal/server"
	"github.com/hotriluan/vuki-sub000/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional outside local dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.ProductVariant{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	orderUC := usecase.NewOrderUsecase(txManager, productRepo, log)
	orderH := handler.NewOrderHandler(orderUC)

	e := server.New(cfg, orderH)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
