package main

import (
	"context"
	"os"
	"time"

	"app/internal/cli"
	"app/internal/config"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// .envは無くても動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	config.ConfigureLogger(cfg)
	logger := config.GetLogger()

	//Store生成（file / postgres）
	var products repo.ProductStore
	var invoices repo.InvoiceStore

	switch cfg.StorageDriver {
	case "postgres":
		gormDB, err := db.Connect()
		if err != nil {
			logger.Fatalf("connect postgres: %v", err)
		}
		if err := infraRepo.AutoMigrate(gormDB); err != nil {
			logger.Fatalf("migrate: %v", err)
		}
		products = infraRepo.NewProductGormStore(gormDB)
		invoices = infraRepo.NewInvoiceGormStore(gormDB)
	default:
		products = infraRepo.NewProductFileStore(cfg.ProductsPath())
		invoices = infraRepo.NewInvoiceFileStore(cfg.InvoicesPath())
	}

	//Usecase生成
	inventoryUC := usecase.NewInventoryUsecase(products)
	invoiceUC := usecase.NewInvoiceUsecase(products, invoices, &uuidGenerator{}, &realClock{})

	//メニュー起動
	app := cli.New(inventoryUC, invoiceUC, os.Stdin, os.Stdout)
	if err := app.Run(context.Background()); err != nil {
		logger.Fatalf("run: %v", err)
	}
}
