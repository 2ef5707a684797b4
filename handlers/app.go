package handlers

import (
	"net/http"

	"github.com/VineethSendilraj/COPilot/config"
	"github.com/gin-gonic/gin"
)

type App struct {
	Cfg config.Config
}

func NewApp(cfg config.Config) *App {
	return &App{Cfg: cfg}
}

func (a *App) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
