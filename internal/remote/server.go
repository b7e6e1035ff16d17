// Package remote lets a phone or browser tap along over HTTP and watch the
// session state. It never touches the engine directly.
package remote

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/input"
)

const (
	statePeriod = 50 * time.Millisecond
	writeWait   = time.Second
)

type Server struct {
	app    *fiber.App
	queue  *input.Queue
	logger *slog.Logger

	mu    sync.RWMutex
	state engine.State
}

func NewServer(queue *input.Queue, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{queue: queue, logger: logger}

	app := fiber.New(fiber.Config{
		AppName:               "anticipate",
		DisableStartupMessage: true,
	})

	api := app.Group("/api")
	api.Post("/tap", s.handleTap)
	api.Get("/state", s.handleState)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Publish replaces the state served to clients.
func (s *Server) Publish(state engine.State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Server) current() engine.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Server) handleTap(c *fiber.Ctx) error {
	s.queue.Trigger(input.Pointer)
	return c.SendStatus(fiber.StatusAccepted)
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.current())
}

func (s *Server) handleStateWS(conn *websocket.Conn) {
	defer conn.Close()

	// reads only detect the close, taps go through the tap endpoint
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(statePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			data, err := json.Marshal(s.current())
			if err != nil {
				s.logger.Warn("unable to encode state", "error", err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// ListenAsync serves on addr until Shutdown.
func (s *Server) ListenAsync(addr string) {
	go func() {
		s.logger.Info("remote tap server listening", "addr", addr)
		if err := s.app.Listen(addr); err != nil {
			s.logger.Error("remote tap server stopped", "error", err)
		}
	}()
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
