package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/solethus/slack-ollama/src/slackbot/bot"
)

// New builds the health/status HTTP surface over the bot's counters.
func New(stats *bot.Stats) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	g.Use(cors.Default())

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	g.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, stats.Snapshot())
	})

	return g
}
