package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/internal/service/relay"
	"github.com/sandevgo/alicebot/pkg/log"
)

// ReplySender delivers a generated reply back to the messaging platform.
type ReplySender interface {
	SendMarkdown(ctx context.Context, recipientID, md string) error
}

// Server exposes the webhook and the direct query endpoints.
type Server struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.MessengerConfig
	relay  *relay.Relay
	sender ReplySender
}

func NewServer(
	ctx context.Context,
	addr string,
	cfg *config.MessengerConfig,
	rel *relay.Relay,
	sender ReplySender,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(ctx))

	s := &Server{
		engine: engine,
		cfg:    cfg,
		relay:  rel,
		sender: sender,
		server: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	engine.GET("/webhook", s.handleVerify)
	engine.POST("/webhook", s.handleEvents)
	engine.GET("/ask", s.handleAsk)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": core.BotVersion})
	})

	return s
}

// requestLogger carries the process logger into every request context so
// handlers and the relay keep using log.FromCtx.
func requestLogger(base context.Context) gin.HandlerFunc {
	logger := log.FromCtx(base)
	return func(c *gin.Context) {
		ctx := logger.WithContext(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.server.Addr).Msg("starting http server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleAsk(c *gin.Context) {
	answer, err := s.relay.Answer(c.Request.Context(), c.Query("query"))
	if err != nil {
		if errors.Is(err, core.ErrNoQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
			return
		}
		log.FromCtx(c.Request.Context()).Error().Err(err).Msg("direct query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
