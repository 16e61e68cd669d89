package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"yof-server/internal/actions"
	"yof-server/internal/auth"
	"yof-server/internal/config"
	"yof-server/internal/dispatch"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client, lib *actions.Library, dispatcher *dispatch.Dispatcher, gen TextGenerator) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/setup", SetupHandler())
	r.POST("/auth/login", LoginHandler(cfg, rdb))

	authed := auth.AuthMiddleware(cfg, rdb, false)
	r.POST("/auth/logout", authed, LogoutHandler(rdb))
	r.GET("/auth/me", authed, MeHandler())

	// WebSocket upgrades carry the token themselves.
	r.GET("/ws/chat", WSChatHandler(cfg, dispatcher))

	api := r.Group("/api", authed)
	{
		api.POST("/chat", ChatHandler(dispatcher))
		api.GET("/briefing", BriefingHandler(lib, gen))
		api.GET("/fortune", FortuneHandler(gen))
		api.GET("/status", StatusHandler(lib))

		api.GET("/goals", ListGoalsHandler(lib))
		api.POST("/goals", CreateGoalHandler(lib))
		api.PUT("/goals/:id", UpdateGoalHandler(lib))
		api.PUT("/goals/:id/toggle", ToggleGoalHandler(lib))
		api.DELETE("/goals/:id", DeleteGoalHandler(lib))

		api.GET("/routines", ListRoutinesHandler(lib))
		api.POST("/routines", CreateRoutineHandler(lib))
		api.POST("/routines/increment", IncrementRoutineHandler(lib))
		api.DELETE("/routines/:id", DeleteRoutineHandler(lib))

		api.GET("/journal", ListJournalHandler(lib))
		api.POST("/journal", CreateJournalHandler(lib))
		api.DELETE("/journal/:id", DeleteJournalHandler(lib))
	}

	return r
}
