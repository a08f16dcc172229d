package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"example.com/glams-api/internal/cache"
	"example.com/glams-api/internal/handlers"
	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/paystack"
	"example.com/glams-api/internal/service"
	"example.com/glams-api/internal/storage"
)

const productCacheTTL = 5 * time.Minute

func OpenDB(cfg Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Admin{},
		&model.Product{},
		&model.Order{},
	)
}

func NewServer(cfg Config) (*gin.Engine, func(), error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, nil, err
	}

	gateway := paystack.New(cfg.PaystackSecret, cfg.PaystackBaseURL, cfg.FrontendURL)
	r, err := NewRouter(cfg, db, gateway)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if s, err := db.DB(); err == nil {
			_ = s.Close()
		}
	}
	return r, cleanup, nil
}

// NewRouter wires services and routes over an already-open database. Tests
// call it directly with a sqlite db and a fake gateway.
func NewRouter(cfg Config, db *gorm.DB, gateway service.Gateway) (*gin.Engine, error) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	images, err := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		return nil, err
	}
	r.Static("/uploads", cfg.UploadDir)

	auth := service.NewAuthService(db, cfg.JWTSecret)
	products := service.NewProductService(db, images)
	orders := service.NewOrderService(db)
	payments := service.NewPaymentService(gateway, orders)

	authHTTP := handlers.NewAuthHTTP(auth)
	productHTTP := handlers.NewProductHTTP(products, cache.New[[]model.Product](productCacheTTL))
	paymentHTTP := handlers.NewPaymentHTTP(payments)
	orderHTTP := handlers.NewOrderHTTP(orders)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Glams API"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	guard := handlers.RequireAdmin(auth)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/admin/login", authHTTP.Login)
		authGroup.GET("/profile", guard, authHTTP.Profile)

		productGroup := api.Group("/products")
		productGroup.GET("", productHTTP.List)
		productGroup.POST("", guard, productHTTP.Create)
		productGroup.PUT("/:id", guard, productHTTP.Update)
		productGroup.DELETE("/:id", guard, productHTTP.Delete)

		paymentGroup := api.Group("/payments")
		paymentGroup.POST("/paystack/initialize", paymentHTTP.Initialize)
		paymentGroup.GET("/paystack/verify", paymentHTTP.Verify)

		orderGroup := api.Group("/orders", guard)
		orderGroup.GET("", orderHTTP.List)
		orderGroup.GET("/:id", orderHTTP.Get)
		orderGroup.PATCH("/:id/status", orderHTTP.UpdateStatus)

		api.GET("/analytics/weekly-sales", guard, orderHTTP.WeeklyStats)
	}

	return r, nil
}
