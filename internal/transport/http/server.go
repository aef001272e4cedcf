package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "memeverse/internal/app"
	"memeverse/internal/bootstrap"
	"memeverse/internal/cache"
	"memeverse/internal/platform/rabbitmq"
	"memeverse/internal/repository"
	"memeverse/internal/transport/http/handler"
	"memeverse/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	memeRepo := repository.NewMemeRepository(app.MySQL)
	tagRepo := repository.NewTagRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	seenCache := cache.NewFeedSeenCache(
		app.Redis,
		time.Duration(app.Config.Feed.SeenTTLSeconds)*time.Second,
		app.Config.Feed.SeenMaxIDs,
	)
	publisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityPersistQueue)

	userService := appsvc.NewUserService(userRepo, memeRepo)
	feedService := appsvc.NewFeedService(memeRepo, seenCache)
	likeService := appsvc.NewLikeService(userRepo, memeRepo, tagRepo, publisher)
	tagService := appsvc.NewTagService(tagRepo, memeRepo, publisher)
	mediaService := appsvc.NewMediaService(memeRepo)
	activityService := appsvc.NewActivityService(activityRepo)

	jwtSecret := app.Config.Auth.JWTSecret
	jwtExpiration := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute

	authHandler := handler.NewAuthHandler(userService, jwtSecret, jwtExpiration)
	userHandler := handler.NewUserHandler(userService)
	feedHandler := handler.NewFeedHandler(feedService, likeService)
	likeHandler := handler.NewLikeHandler(likeService)
	tagHandler := handler.NewTagHandler(tagService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	activityHandler := handler.NewActivityHandler(activityService)

	router.GET("/media/:id", mediaHandler.ServeMedia)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(jwtSecret), authHandler.Me)

	// The feed and liked-memes pages work anonymously; identity only
	// enriches them.
	api.GET("/feed", middleware.OptionalAuthJWT(jwtSecret), feedHandler.GetFeed)
	api.GET("/feed/count", feedHandler.GetTotal)
	api.GET("/liked-memes", middleware.OptionalAuthJWT(jwtSecret), likeHandler.GetLikedMemes)
	api.GET("/users/:username", userHandler.GetProfile)

	authed := api.Group("")
	authed.Use(middleware.AuthJWT(jwtSecret))
	authed.POST("/like/:id", likeHandler.ToggleLike)
	authed.GET("/users", userHandler.ListUsers)
	authed.GET("/search", userHandler.Search)
	authed.PUT("/profile/bio", userHandler.UpdateBio)
	authed.PUT("/profile/navbar", userHandler.UpdateNavbarSettings)
	authed.GET("/activity", activityHandler.Recent)

	authed.GET("/tags", tagHandler.GetUserTags)
	authed.POST("/tags", tagHandler.CreateTag)
	authed.DELETE("/tags/:id", tagHandler.DeleteTag)
	authed.GET("/memes/:id/tags", tagHandler.GetMemeTags)
	authed.POST("/memes/:id/tags", tagHandler.AddTagsToMeme)
	authed.DELETE("/memes/:id/tags/:tagId", tagHandler.RemoveTagFromMeme)

	return router
}
