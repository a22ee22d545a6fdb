package router

import (
	"context"
	"log"
	"time"

	"github.com/jkask/blabber/backend/internal/handlers"
	appmw "github.com/jkask/blabber/backend/internal/middleware"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"github.com/jkask/blabber/backend/internal/services"
	"github.com/jkask/blabber/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database(cfg.MongoDB)
	if err := ensureIndexes(mongoDB); err != nil {
		log.Fatalf("Failed to create MongoDB indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured.")

	// Liveness check - always accessible
	e.GET("/api/check", handlers.Check)

	// --- Initialize repositories and services ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	likeRepo := repositories.NewMongoLikeRepository(mongoDB)

	cascader := services.NewCascader(userRepo, postRepo, commentRepo, likeRepo)
	contentService := services.NewContentService(postRepo, commentRepo, likeRepo, userRepo, cascader)
	reactionService := services.NewReactionService(postRepo, commentRepo, likeRepo, userRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(appmw.JWTAuthMiddleware(userRepo, cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(cascader)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(contentService)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(contentService)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(reactionService)
	likeHandler.RegisterLikeRoutes(api)

	log.Println("All routes configured.")
}

// ensureIndexes creates the MongoDB indexes the domain rules depend on.
// The unique likes index is what makes the toggle race-safe: two racing
// inserts of the same (user, kind, document) tuple cannot both commit.
func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("likes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "on_model", Value: 1},
			{Key: "on_document", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("comments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("posts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}
