package routes

import (
	"Guessify/controllers"
	"Guessify/middleware"
	"Guessify/services/games"
	"Guessify/services/redis"
	"Guessify/services/tracks"
	utils "Guessify/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	store := games.NewStore(db)
	provider := tracks.NewProvider()

	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	api.GET("/users", controllers.GetAllUsers(db))

	api.GET("/games", controllers.GetAllGames(store))

	api.GET("/games/:id", controllers.GetGame(store))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.POST("/games", controllers.CreateGame(store, provider))
	}
}
