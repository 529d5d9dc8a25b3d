package main

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cardline/internal/game"
	"cardline/internal/shared/configs"
	"cardline/internal/shared/logger"
	"cardline/internal/transport/ws"
)

func main() {
	logger.SetLevel(configs.Envs.LOG_LEVEL)

	var allowedOrigins = []string{}
	if configs.Envs.GIN_MODE == "release" {
		allowedOrigins = append(allowedOrigins, "https://"+configs.Envs.FRONTEND_ORIGIN)
		allowedOrigins = append(allowedOrigins, "https://www."+configs.Envs.FRONTEND_ORIGIN)
	} else {
		allowedOrigins = append(allowedOrigins, "http://"+configs.Envs.FRONTEND_ORIGIN)
	}

	hub := ws.NewHub()
	sessions := game.NewSessionRegistry(game.SessionTTL)
	registry := game.NewRegistry(sessions, hub)
	tokens := ws.NewTokenManager(configs.Envs.TOKEN_KEY)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx)

	r := gin.Default()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{
			"error": "forbidden origin",
		})
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{"Content-Type", "Origin"},
	}))

	handler := ws.NewHandler(registry, hub, tokens)
	handler.RegisterRoutes(r)

	logger.Infof("cardline listening on %s", configs.Envs.LISTEN_ADDR)
	err := r.Run(configs.Envs.LISTEN_ADDR)
	logger.Fatalf("Couldn't start server: %v", err)
}
