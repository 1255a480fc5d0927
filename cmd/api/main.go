package main

import (
	"context"
	"time"

	"inventario/internal/config"
	"inventario/internal/domain/model"
	"inventario/internal/handler"
	"inventario/internal/infra/db"
	"inventario/internal/infra/notify"
	infraRepo "inventario/internal/infra/repository"
	"inventario/internal/middleware"
	"inventario/internal/server"
	"inventario/internal/usecase"
	auth "inventario/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(e model.Employee, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   e.ID,
		"email": e.Email,
		"name":  e.Name,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	logger := config.GetLogger()

	// .envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.WithError(err).Fatal("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.Employee{},
		&model.InventoryItem{},
		&model.StockMovement{},
	); err != nil {
		logger.WithError(err).Fatal("db migrate failed")
	}

	//Redis接続（履歴のリアルタイム通知用）。落ちていても起動は続ける
	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unavailable, movement notifications degraded")
		}
		cancel()
	}

	//Repository（GORM実装）生成
	employeeRepo := infraRepo.NewEmployeeGormRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	movementRepo := infraRepo.NewMovementGormRepository(gormDB)
	notifier := notify.NewRedisMovementNotifier(redisClient, logger)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（初期アカウント：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 8 * time.Hour,
	}

	//従業員テーブルが空なら初期アカウントを作る
	if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
		seedUC := auth.NewSeedEmployeeUsecase(employeeRepo, hasher, idGen, clock)
		created, err := seedUC.Execute(context.Background(), auth.SeedEmployeeInput{
			Email:    cfg.SeedEmail,
			Password: cfg.SeedPassword,
			Name:     cfg.SeedName,
		})
		if err != nil {
			logger.WithError(err).Fatal("seed employee failed")
		}
		if created {
			logger.WithField("email", cfg.SeedEmail).Info("seed employee created")
		}
	}

	//Usecase生成
	loginUC := auth.NewLoginUsecase(employeeRepo, verifier, issuer, clock)
	movementUC := usecase.NewMovementUsecase(movementRepo, itemRepo, employeeRepo, notifier, clock, logger)
	inventoryUC := usecase.NewInventoryUsecase(itemRepo, movementUC, idGen, clock, logger)
	statsUC := usecase.NewStatsUsecase(itemRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(loginUC),
		Item:     handler.NewItemHandler(inventoryUC),
		Movement: handler.NewMovementHandler(movementUC, notifier),
		Stats:    handler.NewStatsHandler(statsUC),
	}

	//Server起動
	addr := ":8080"
	if cfg.Port != "" {
		if cfg.Port[0] != ':' {
			addr = ":" + cfg.Port
		} else {
			addr = cfg.Port
		}
	}

	e := server.New(handlers, middleware.AuthJWT(cfg))
	logger.WithField("addr", addr).Info("server starting")
	if err := server.Start(e, addr); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
