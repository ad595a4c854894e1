package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/JasonCastel/ChatIRC/internal/adapters/signal"
	"github.com/JasonCastel/ChatIRC/internal/app"
	"github.com/JasonCastel/ChatIRC/internal/config"
)

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.ChatWSController, rooms *app.Directory) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.List()})
	})

	api.GET("/ws/chat", func(c *gin.Context) {
		ctl.HandleChat(ctx, c)
	})

	return r
}
