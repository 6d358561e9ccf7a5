package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// WebServer exposes the player over a small JSON API.
type WebServer struct {
	player   *Player
	songsDir string
	ctx      context.Context
}

func NewWebServer(ctx context.Context, player *Player, songsDir string) *WebServer {
	return &WebServer{player: player, songsDir: songsDir, ctx: ctx}
}

// Router builds the gin engine with every route registered.
func (ws *WebServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/songs", ws.listSongs)
	r.POST("/play", ws.startPlayback)
	r.POST("/stop", ws.stopPlayback)
	r.GET("/status", ws.playbackStatus)
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (ws *WebServer) ListenAndServe(addr string) error {
	srv := &http.Server{Addr: addr, Handler: ws.Router()}
	go func() {
		<-ws.ctx.Done()
		_ = srv.Close()
	}()
	logger.Info("http: listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (ws *WebServer) listSongs(c *gin.Context) {
	songs, err := ListLibrary(ws.songsDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (ws *WebServer) startPlayback(c *gin.Context) {
	var req struct {
		Instrument string `json:"instrument" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instrument and name are required"})
		return
	}
	if !plainName(req.Instrument) || !plainName(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid song reference"})
		return
	}

	path := filepath.Join(ws.songsDir, req.Instrument, req.Name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "song not found"})
		return
	}

	if err := ws.player.Start(ws.ctx, path); err != nil {
		if errors.Is(err, ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "playback started", "song": path})
}

func (ws *WebServer) stopPlayback(c *gin.Context) {
	if err := ws.player.Stop(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stop requested"})
}

func (ws *WebServer) playbackStatus(c *gin.Context) {
	c.JSON(http.StatusOK, ws.player.Status())
}

// plainName reports whether s names a directory entry without walking out of it.
func plainName(s string) bool {
	return s != "." && s != ".." && filepath.Base(s) == s
}
