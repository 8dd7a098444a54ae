// Package ws exposes the running controller over HTTP: a frame preview
// stream, a diagnostics stream for render-loop errors, a small control
// channel and a health endpoint.
package ws

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/hub75ctl/internal/controller"
	"github.com/coreman2200/hub75ctl/internal/diagnostics"
)

type Server struct {
	ctl *controller.Controller

	mu          sync.Mutex
	frameID     uint64
	startTime   time.Time
	lastEmit    time.Time
	throttle    time.Duration
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
}

func NewServer() *Server {
	return &Server{
		startTime:   time.Now(),
		throttle:    50 * time.Millisecond, // ~20 FPS to preview clients
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
}

// Attach binds the controller the handlers act on. Must be called before the
// server starts taking requests; the sinks tolerate being called earlier.
func (s *Server) Attach(ctl *controller.Controller) { s.ctl = ctl }

// Routes registers all handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/frames", s.HandleFramesWS)
	mux.HandleFunc("/ws/diag", s.HandleDiagWS)
	mux.HandleFunc("/ws/control", s.HandleControlWS)
	mux.HandleFunc("/healthz", s.HandleHealth)
}

// FrameSink receives every submitted frame from the render loop. Broadcasts
// are throttled; dropping preview frames is fine, dropping panel frames is
// not, so this must never block the loop.
func (s *Server) FrameSink(frame []byte) {
	if s.ctl == nil {
		return
	}
	s.mu.Lock()
	s.frameID++
	now := time.Now()
	if s.lastEmit.Add(s.throttle).After(now) || len(s.clients) == 0 {
		s.mu.Unlock()
		return
	}
	s.lastEmit = now
	id := s.frameID
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	msg, err := json.Marshal(map[string]any{
		"frame_id": id,
		"w":        s.ctl.Width(),
		"h":        s.ctl.Height(),
		"rgb":      base64.StdEncoding.EncodeToString(frame),
	})
	if err != nil {
		return
	}
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.drop(c)
		}
	}
}

// PushDiag forwards a render-loop diagnostic to all diag subscribers.
func (s *Server) PushDiag(d diagnostics.Diagnostic) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.diagClients))
	for c := range s.diagClients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	msg, err := json.Marshal(d)
	if err != nil {
		return
	}
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.dropDiag(c)
		}
	}
}

func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.drop(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go func() {
		defer func() {
			s.dropDiag(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleControlWS accepts pixel writes and clears from remote clients.
func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg struct {
			Op    string `json:"op"` // "pixel" | "frame" | "clear"
			X     int    `json:"x"`
			Y     int    `json:"y"`
			R     byte   `json:"r"`
			G     byte   `json:"g"`
			B     byte   `json:"b"`
			Frame string `json:"frame,omitempty"` // base64 RGB
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Op {
		case "pixel":
			s.ctl.SetPixel(msg.X, msg.Y, msg.R, msg.G, msg.B)
		case "frame":
			raw, err := base64.StdEncoding.DecodeString(msg.Frame)
			if err != nil {
				continue
			}
			if err := s.ctl.SetFrame(raw); err != nil {
				log.Warn().Err(err).Msg("control frame rejected")
			}
		case "clear":
			s.ctl.Clear()
		}
	}
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	id := s.frameID
	s.mu.Unlock()
	resp := map[string]any{
		"frame_id": id,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"width":    s.ctl.Width(),
		"height":   s.ctl.Height(),
		"fps":      s.ctl.FPS(),
		"running":  s.ctl.IsRunning(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) drop(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) dropDiag(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.diagClients, c)
	s.mu.Unlock()
}
