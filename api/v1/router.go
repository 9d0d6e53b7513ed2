package v1

import (
	"net/http"
	"time"

	authapi "swdb/api/v1/auth"
	"swdb/api/v1/inst"
	"swdb/api/v1/middleware"
	"swdb/api/v1/swdb"
	"swdb/internal/cas"
	"swdb/internal/config"
	"swdb/internal/history"
	"swdb/internal/httpx"
	"swdb/internal/session"
	"swdb/internal/slots"
	"swdb/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes plus the root-level auth flow
// endpoints. Reads are public; mutating routes sit behind the session gate.
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, sessions *session.Store) {
	casClient := cas.NewClient(cfg.CAS.BaseURL, cfg.CAS.ServiceURL,
		time.Duration(cfg.CAS.TimeoutSec)*time.Second)
	slotClient := slots.NewClient(cfg.CCDB.BaseURL,
		time.Duration(cfg.CCDB.TimeoutSec)*time.Second)

	hist := history.NewService(db)
	swHandler := swdb.NewHandler(db, hist, &cfg.Enums)
	instHandler := inst.NewHandler(db, hist, &cfg.Enums)
	authHandler := authapi.NewHandler(db, casClient, sessions, cfg)

	// Auth flow lives at the root, outside the API prefix
	r.GET("/caslogin", authHandler.CASLogin)
	r.GET("/testlogin", authHandler.TestLogin)
	r.GET("/logout", authHandler.Logout)

	// Live change feed
	if ws.Server != nil {
		r.GET("/ws/*any", gin.WrapH(ws.Server))
		r.POST("/ws/*any", gin.WrapH(ws.Server))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/ping", pingHandler)

		sw := v1.Group("/swdb")
		{
			sw.GET("", swHandler.List)
			sw.GET("/:id", swHandler.GetByID)
			sw.GET("/hist/:id", swHandler.History)
			sw.POST("/list", swHandler.BatchSummaries)
			sw.GET("/config", configHandler(cfg))
			sw.GET("/user", authHandler.User)
			sw.GET("/slot", slotHandler(slotClient))

			swAuth := sw.Group("")
			swAuth.Use(middleware.AuthRequired(sessions))
			{
				swAuth.POST("", swHandler.Create)
				swAuth.PUT("/:id", swHandler.Update)
				swAuth.PATCH("/:id", swHandler.Update)
			}
		}

		in := v1.Group("/inst")
		{
			in.GET("", instHandler.List)
			in.GET("/:id", instHandler.GetByID)
			in.GET("/hist/:id", instHandler.History)

			inAuth := in.Group("")
			inAuth.Use(middleware.AuthRequired(sessions))
			{
				inAuth.POST("", instHandler.Create)
				inAuth.PUT("/:id", instHandler.Update)
				inAuth.PATCH("/:id", instHandler.Update)
			}
		}
	}
}

// pingHandler handles the liveness request
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// configHandler returns the enum/config snapshot the client consumes
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpx.OK(c, cfg.Enums)
	}
}

// slotHandler proxies slot data from the external CCDB source, relaying the
// upstream body verbatim
func slotHandler(client *slots.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, appErr := client.Fetch(c.Request.Context(), c.Query("name"))
		if appErr != nil {
			httpx.FailErr(c, appErr)
			return
		}
		c.Data(http.StatusOK, "application/json", body)
	}
}
