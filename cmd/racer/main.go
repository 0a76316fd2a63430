package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/abhishek9871/3D-Racing-Game/internal/config"
	"github.com/abhishek9871/3D-Racing-Game/internal/physics"
	"github.com/abhishek9871/3D-Racing-Game/internal/race"
	"github.com/abhishek9871/3D-Racing-Game/internal/session"
	"github.com/abhishek9871/3D-Racing-Game/internal/shared/logger"
	"github.com/abhishek9871/3D-Racing-Game/internal/shared/types"
	"github.com/abhishek9871/3D-Racing-Game/internal/telemetry"
)

var configPath = flag.String("config", os.Getenv("RACER_CONFIG"), "Path to a JSON config file")

type client struct {
	sess *session.Session
	conn *websocket.Conn
	send chan []byte
}

type server struct {
	log       logger.Logger
	cfg       config.Config
	telemetry *telemetry.Store
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
}

func main() {
	flag.Parse()
	log := logger.New("racer")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	s := newServer(log, cfg)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           telemetry.WithCORS(s.routes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Int("laps", cfg.TotalLaps).Int("ai", cfg.AICount).Msg("race server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeAll()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("race server stopped")
}

func newServer(log logger.Logger, cfg config.Config) *server {
	return &server{
		log:       log,
		cfg:       cfg,
		telemetry: telemetry.NewStore(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*client),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	s.telemetry.Register(mux)
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}

	sess := session.New(session.Options{
		Tuning:  s.cfg.Tuning(),
		Track:   race.DefaultTrack(),
		Physics: physics.DefaultParams(),
		SimHz:   s.cfg.SimHz,
		Sink:    s.telemetry,
		Log:     s.log,
	})
	c := &client{sess: sess, conn: conn, send: make(chan []byte, 64)}
	s.register(c)
	s.log.Info().Str("session", sess.ID()).Str("remote", r.RemoteAddr).Msg("client connected")

	state := sess.Snapshot()
	s.enqueue(c, types.ServerEnvelope{
		Type:     "welcome",
		State:    &state,
		ServerMS: time.Now().UTC().UnixMilli(),
		Message:  "connected",
	})

	ctx, cancel := context.WithCancel(context.Background())
	go s.writePump(c)
	go s.replicate(ctx, c)
	s.readPump(ctx, c)
	cancel()
}

func (s *server) readPump(ctx context.Context, c *client) {
	defer func() {
		s.unregister(c.sess.ID())
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info().Str("session", c.sess.ID()).Msg("client disconnected")
				return
			}
			s.log.Warn().Str("session", c.sess.ID()).Err(err).Msg("read error")
			return
		}

		var in types.ClientEnvelope
		if err := json.Unmarshal(msg, &in); err != nil {
			s.sendError(c, "bad_payload")
			continue
		}

		switch in.Type {
		case "key":
			if in.Key == "" {
				s.sendError(c, "missing_key")
				continue
			}
			c.sess.Keys().Set(in.Key, in.Down)
		case "start", "restart":
			c.sess.Start(ctx)
		case "menu":
			c.sess.Menu()
		case "ping":
			s.enqueue(c, types.ServerEnvelope{Type: "pong", ServerMS: time.Now().UTC().UnixMilli()})
		default:
			s.sendError(c, "unsupported_message_type")
		}
	}
}

func (s *server) writePump(c *client) {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				return
			}
		}
	}
}

// replicate pushes the session state to the client until ctx ends.
func (s *server) replicate(ctx context.Context, c *client) {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.ReplicationHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := c.sess.Snapshot()
			s.enqueue(c, types.ServerEnvelope{
				Type:     "state",
				State:    &state,
				ServerMS: time.Now().UTC().UnixMilli(),
			})
		}
	}
}

func (s *server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.sess.ID()] = c
}

func (s *server) unregister(id string) {
	s.mu.Lock()
	c, ok := s.clients[id]
	if ok {
		delete(s.clients, id)
		close(c.send)
	}
	s.mu.Unlock()

	if ok {
		c.sess.Close()
	}
}

func (s *server) closeAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.unregister(id)
	}
}

// enqueue drops the message when the client is slow or already gone.
func (s *server) enqueue(c *client, env types.ServerEnvelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal envelope failed")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[c.sess.ID()]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (s *server) sendError(c *client, message string) {
	s.enqueue(c, types.ServerEnvelope{
		Type:    "error",
		Message: message,
	})
}
