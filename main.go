package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/config"
	"github.com/Qwerty-Alisha/ShopEase/controllers"
	"github.com/Qwerty-Alisha/ShopEase/database"
	"github.com/Qwerty-Alisha/ShopEase/kafka"
	"github.com/Qwerty-Alisha/ShopEase/logger"
	"github.com/Qwerty-Alisha/ShopEase/middleware"
	"github.com/Qwerty-Alisha/ShopEase/repository"
	"github.com/Qwerty-Alisha/ShopEase/routes"
	"github.com/Qwerty-Alisha/ShopEase/services"
	"github.com/Qwerty-Alisha/ShopEase/storage"
)

const (
	cartTTL    = 7 * 24 * time.Hour
	sessionTTL = time.Hour
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	zlog := logger.Initialize(cfg.Environment)
	defer zlog.Sync()

	if err := database.Connect(cfg.MongoURL, cfg.MongoDBName); err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewMongoUserRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	brandRepo := repository.NewBrandRepository(database.DB)
	orderRepo := repository.NewMongoOrderRepository(database.DB)
	paymentRepo := repository.NewMongoPaymentRepository(database.DB)
	cartRepo := repository.NewCartRepository(redisClient, cartTTL)

	// Services
	tokenSvc := services.NewTokenService(cfg.JWTSecretKey, cfg.JWTTTL)
	sessionStore := services.NewSessionStore(redisClient, cfg.SessionKey, sessionTTL)
	authSvc := services.NewAuthService(userRepo, tokenSvc, sessionStore, zlog)
	stripeSvc := services.NewStripeService(cfg.StripeServerKey, cfg.EndpointSecret)
	paymentSvc := services.NewPaymentService(stripeSvc, paymentRepo, zlog)
	orderSvc := services.NewOrderService(orderRepo, cartRepo, zlog)

	producer := kafka.NewPaymentEventProducer(cfg.KafkaBrokers, cfg.PaymentEventsTopic, zlog)
	defer producer.Close()

	var uploader *storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewUploader(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			zlog.Fatal("Failed to initialize S3 uploader", zap.Error(err))
		}
	}

	// Authentication context, built once and injected into the router.
	auth := middleware.NewAuthenticator(tokenSvc, sessionStore, userRepo)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zlog))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	routes.Register(r, auth, routes.Controllers{
		Auth:     &controllers.AuthController{Auth: authSvc, Logger: zlog},
		Users:    &controllers.UserController{Users: userRepo, Logger: zlog},
		Products: &controllers.ProductController{Products: productRepo, Uploader: uploader, Logger: zlog},
		Category: &controllers.CategoryController{Categories: categoryRepo, Logger: zlog},
		Brands:   &controllers.BrandController{Brands: brandRepo, Logger: zlog},
		Carts:    &controllers.CartController{Carts: cartRepo, Products: productRepo, Logger: zlog},
		Orders:   &controllers.OrderController{Orders: orderSvc, Logger: zlog},
		Payments: &controllers.PaymentController{
			Payments: paymentSvc,
			Stripe:   stripeSvc,
			Orders:   orderSvc,
			Repo:     paymentRepo,
			Producer: producer,
			Logger:   zlog,
		},
		Checkout: controllers.NewCheckoutController(paymentSvc, zlog),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}
}
