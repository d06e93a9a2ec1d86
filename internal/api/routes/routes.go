package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"martial-service/internal/adapters/storage"
	"martial-service/internal/api/middleware"
	"martial-service/internal/auth"
	"martial-service/internal/martialart"
	"martial-service/internal/poll"
	"martial-service/internal/post"
	"martial-service/internal/upload"
)

type Router struct {
	engine            *gin.Engine
	authHandler       *auth.Handler
	martialArtHandler *martialart.Handler
	postHandler       *post.Handler
	pollHandler       *poll.Handler
	uploadHandler     *upload.Handler
	authMW            *middleware.AuthMiddleware
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(
	db *gorm.DB,
	mongoDB *mongo.Database,
	minioClient *storage.MinIOClient,
	jwtSecret string,
	jwtExpire time.Duration,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	userRepo := auth.NewUserRepository(db)
	martialArtRepo := martialart.NewMongoRepository(mongoDB)
	postRepo := post.NewMongoRepository(mongoDB)
	pollRepo := poll.NewMongoRepository(mongoDB)

	authService := auth.NewService(userRepo, jwtSecret, jwtExpire)
	martialArtService := martialart.NewService(martialArtRepo)
	postService := post.NewService(postRepo, userRepo, minioClient)
	pollService := poll.NewService(pollRepo, userRepo)

	return &Router{
		engine:            engine,
		authHandler:       auth.NewHandler(authService),
		martialArtHandler: martialart.NewHandler(martialArtService),
		postHandler:       post.NewHandler(postService),
		pollHandler:       poll.NewHandler(pollService),
		uploadHandler:     upload.NewHandler(minioClient),
		authMW:            middleware.NewAuthMiddleware(authService),
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// SetupRoutes configures all the routes for the application
func (r *Router) SetupRoutes() {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")
	requireAuth := r.authMW.RequireAuth()

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", requireAuth, r.authHandler.Me)
		authGroup.PUT("/profile", requireAuth, r.authHandler.UpdateProfile)
	}

	martialArts := api.Group("/martial-arts")
	{
		martialArts.GET("", r.martialArtHandler.List)
		martialArts.GET("/:id", r.martialArtHandler.Get)
		martialArts.POST("", requireAuth, r.martialArtHandler.Create)
		martialArts.PUT("/:id", requireAuth, r.martialArtHandler.Update)
		martialArts.DELETE("/:id", requireAuth, r.martialArtHandler.Delete)
	}

	posts := api.Group("/posts")
	{
		posts.GET("/martial-art/:id", r.postHandler.ListByMartialArt)
		posts.POST("", requireAuth, r.postHandler.Create)
		posts.POST("/:id/reaction", requireAuth, r.postHandler.ToggleReaction)
		posts.POST("/:id/comment", requireAuth, r.postHandler.AddComment)
		posts.DELETE("/:id", requireAuth, r.postHandler.Delete)
	}

	polls := api.Group("/polls")
	{
		polls.GET("/martial-art/:id", r.pollHandler.ListByMartialArt)
		polls.GET("/:id", r.pollHandler.Get)
		polls.POST("", requireAuth, r.pollHandler.Create)
		polls.POST("/:id/vote", requireAuth, r.pollHandler.Vote)
	}

	uploads := api.Group("/uploads")
	{
		uploads.POST("/images", requireAuth, r.uploadHandler.UploadImage)
	}
}
