package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	//.envは無くてもよい（その場合は環境変数だけ使う）
	_ = godotenv.Load("../.env")
	_ = godotenv.Load()

	//金額はJSONではクォート無しの数値で返す
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Cake{},
		&model.Order{},
		&model.OrderItem{},
		&model.CustomCakeRequest{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	cakeRepo := infraRepo.NewCakeGormRepository(gormDB)
	requestRepo := infraRepo.NewCustomRequestGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	cakeUC := usecase.NewCakeUsecase(cakeRepo)
	orderUC := usecase.NewOrderUsecase(txm)
	requestUC := usecase.NewCustomRequestUsecase(requestRepo)

	//Handler生成
	cakeH := handler.NewCakeHandler(cakeUC)
	adminCakeH := handler.NewAdminCakeHandler(cakeUC)
	orderH := handler.NewOrderHandler(orderUC)
	adminOrderH := handler.NewAdminOrderHandler(orderUC)
	requestH := handler.NewCustomRequestHandler(requestUC)
	adminRequestH := handler.NewAdminRequestHandler(requestUC)

	//Server起動
	if err := server.Start(cfg,
		cakeH, adminCakeH,
		orderH, adminOrderH,
		requestH, adminRequestH,
	); err != nil {
		panic(err)
	}
}
