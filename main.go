package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/external/mailer"
	"github.com/nexon-digital/storefront-api/external/payments"
	"github.com/nexon-digital/storefront-api/external/storage"
	"github.com/nexon-digital/storefront-api/models"
	"github.com/nexon-digital/storefront-api/routes"
	"github.com/nexon-digital/storefront-api/services"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.WishlistItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// External clients
	ctx := context.Background()

	paymentClient, err := payments.NewClient()
	if err != nil {
		log.Fatalf("❌ Payment client init failed: %v", err)
	}

	objectStorage, err := storage.NewS3Storage(ctx)
	if err != nil {
		log.Fatalf("❌ S3 storage init failed: %v", err)
	}

	mailClient, err := mailer.NewMailer()
	if err != nil {
		log.Fatalf("❌ Mailer init failed: %v", err)
	}

	// Services
	authService, err := services.NewAuthService(db, mailClient)
	if err != nil {
		log.Fatalf("❌ Auth service init failed: %v", err)
	}

	deps := &routes.Deps{
		Auth:       authService,
		Users:      services.NewUserService(db, objectStorage),
		Products:   services.NewProductService(db, objectStorage),
		Categories: services.NewCategoryService(db),
		Brands:     services.NewBrandService(db, objectStorage),
		Cart:       services.NewCartService(db),
		Orders:     services.NewOrderService(db, paymentClient),
		Reviews:    services.NewReviewService(db),
		Wishlist:   services.NewWishlistService(db),
		Stats:      services.NewStatsService(db),
		Payments:   paymentClient,
	}

	// Gin setup
	r := gin.Default()

	// Allow large image uploads (32 MB)
	r.MaxMultipartMemory = 32 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-Id", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, deps)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// corsOrigins reads the comma-separated CORS_ORIGINS list, defaulting to
// allow-all for local development.
func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
