// Package web serves a read-only browser preview of the wall over a
// websocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/guidoenr/ledwall/internal/render"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Info describes the running wall for /api/status.
type Info struct {
	Stripes   int    `json:"stripes"`
	LEDs      int    `json:"leds"`
	Animation string `json:"animation"`
	Layout    string `json:"layout"`
	TargetFPS int    `json:"targetFPS"`
	Source    string `json:"source"`
}

// Snapshot is one websocket message: the wall's colors stripe-major.
type Snapshot struct {
	Version uint64   `json:"version"`
	Stripes int      `json:"stripes"`
	LEDs    int      `json:"leds"`
	Colors  []string `json:"colors"`
}

// StatusResponse is the body of /api/status.
type StatusResponse struct {
	Info
	Version uint64 `json:"version"`
	Clients int    `json:"clients"`
}

// Server broadcasts every drawn frame to connected browsers. It implements
// render.Renderer.
type Server struct {
	mu        sync.RWMutex
	clients   map[*websocketClient]bool
	broadcast chan []byte
	upgrader  websocket.Upgrader
	info      Info
	last      []byte
	version   uint64
	log       *log.Logger

	colors []string
	mux    *http.ServeMux
	http   *http.Server
	done   chan struct{}
	once   sync.Once
}

type websocketClient struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// NewServer creates a preview server. Call Start to listen, or mount
// Handler yourself.
func NewServer(info Info, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		clients:   make(map[*websocketClient]bool),
		broadcast: make(chan []byte, 16),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		info: info,
		log:  logger,
		mux:  http.NewServeMux(),
		done: make(chan struct{}),
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	go s.broadcastLoop()
	return s
}

// Handler returns the preview's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on addr and serves in the background. It returns once the
// listener is bound, so a bad address fails immediately.
func (s *Server) Start(addr string) (net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.http = &http.Server{Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	s.log.Printf("preview listening on http://%s", ln.Addr())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Printf("preview server: %v", err)
		}
	}()
	return ln.Addr(), nil
}

// Draw encodes the frame as a Snapshot and queues it for every client. A
// full queue drops the frame; browsers only need the latest one.
func (s *Server) Draw(f render.Frame) error {
	if cap(s.colors) < len(f.Elements) {
		s.colors = make([]string, len(f.Elements))
	}
	s.colors = s.colors[:len(f.Elements)]
	for i, e := range f.Elements {
		s.colors[i] = e.Color.Hex()
	}

	data, err := json.Marshal(Snapshot{
		Version: f.Version,
		Stripes: f.Stripes,
		LEDs:    f.LEDs,
		Colors:  s.colors,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.last = data
	s.version = f.Version
	s.mu.Unlock()

	select {
	case s.broadcast <- data:
	default:
	}
	return nil
}

// Close stops the listener and disconnects every client.
func (s *Server) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.http != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err = s.http.Shutdown(ctx)
		}
		s.mu.Lock()
		for c := range s.clients {
			close(c.send)
			delete(s.clients, c)
		}
		s.mu.Unlock()
	})
	return err
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := StatusResponse{
		Info:    s.info,
		Version: s.version,
		Clients: len(s.clients),
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &websocketClient{
		conn:   conn,
		send:   make(chan []byte, 4),
		server: s,
	}

	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return
	default:
	}
	s.clients[client] = true
	if s.last != nil {
		client.send <- s.last
	}
	s.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

func (s *Server) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case message := <-s.broadcast:
			s.mu.Lock()
			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// slow reader; drop it
					close(client.send)
					delete(s.clients, client)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) unregister(c *websocketClient) {
	s.mu.Lock()
	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

// readPump only exists to process pongs and notice disconnects; the
// preview accepts no commands.
func (c *websocketClient) readPump() {
	defer func() {
		c.server.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *websocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// skip to the newest queued snapshot
			for n := len(c.send); n > 0; n-- {
				next, ok := <-c.send
				if !ok {
					break
				}
				message = next
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>ledwall preview</title>
<style>
  body { margin: 0; background: #000; color: #888; font: 12px monospace; }
  canvas { display: block; margin: 0 auto; }
  #status { position: fixed; left: 8px; bottom: 8px; }
</style>
</head>
<body>
<canvas id="wall"></canvas>
<div id="status">connecting</div>
<script>
const canvas = document.getElementById("wall");
const ctx = canvas.getContext("2d");
const status = document.getElementById("status");

function draw(snap) {
  const cell = Math.floor(Math.min(window.innerWidth / snap.stripes, window.innerHeight / snap.leds));
  canvas.width = cell * snap.stripes;
  canvas.height = cell * snap.leds;
  ctx.fillStyle = "#000";
  ctx.fillRect(0, 0, canvas.width, canvas.height);
  const r = Math.max(1, cell / 2 - 1);
  for (let i = 0; i < snap.stripes; i++) {
    for (let j = 0; j < snap.leds; j++) {
      ctx.fillStyle = snap.colors[i * snap.leds + j];
      ctx.beginPath();
      ctx.arc(i * cell + cell / 2, j * cell + cell / 2, r, 0, 2 * Math.PI);
      ctx.fill();
    }
  }
  status.textContent = snap.stripes + "x" + snap.leds + " frame " + snap.version;
}

function connect() {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = (ev) => draw(JSON.parse(ev.data));
  ws.onclose = () => { status.textContent = "disconnected"; setTimeout(connect, 1000); };
}
connect();
</script>
</body>
</html>
`
