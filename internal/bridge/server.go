package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/pelcoctl/internal/logging"
	"github.com/muurk/pelcoctl/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer
	readWait = 60 * time.Second

	// Read chunk size for the link-to-client pump
	pumpBufSize = 64

	// How often the link pump wakes up to check for a client disconnect
	// when the link supports read deadlines
	pumpPollInterval = 250 * time.Millisecond
)

// deadlineReader is satisfied by net.Conn links. Serial ports configure
// a read timeout at open instead, which surfaces as a zero-byte read
// with no error.
type deadlineReader interface {
	SetReadDeadline(t time.Time) error
}

// Config holds the bridge configuration.
type Config struct {
	Host string
	Port int
}

// Server relays protocol frames between WebSocket clients and a single
// camera link. The link is typically a serial port but any duplex byte
// channel works.
type Server struct {
	config   *Config
	link     io.ReadWriter
	port     *protocol.Port
	upgrader websocket.Upgrader
	httpSrv  *http.Server
	listener net.Listener

	mu         sync.Mutex
	controller string // remote addr of the active client, "" if free
}

// New creates a bridge serving the given link.
func New(config *Config, link io.ReadWriter) *Server {
	return &Server{
		config: config,
		link:   link,
		port:   protocol.NewPort(link),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  256,
			WriteBufferSize: 256,
			// The bridge runs on trusted LANs; same-origin checks
			// would only break non-browser clients.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start starts the bridge and blocks until the listener closes.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.handleControl)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.httpSrv = &http.Server{Handler: mux}

	logging.Info("Bridge listening for controllers",
		zap.String("addr", listener.Addr().String()),
	)

	if err := s.httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully stops the bridge.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down bridge...")
	if s.httpSrv == nil {
		return nil
	}
	err := s.httpSrv.Shutdown(ctx)
	logging.Sync()
	return err
}

// acquire claims the link for a client. Returns false if another
// client already controls it.
func (s *Server) acquire(remoteAddr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller != "" {
		return false
	}
	s.controller = remoteAddr
	return true
}

func (s *Server) release(remoteAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller == remoteAddr {
		s.controller = ""
	}
}

// Controller returns the remote address of the active client, or ""
// when the link is free.
func (s *Server) Controller() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

// handleControl upgrades the request and runs the relay loops.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	remoteAddr := r.RemoteAddr

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}
	defer func() { _ = conn.Close() }()

	if !s.acquire(remoteAddr) {
		logging.Warn("Rejecting controller, link is busy",
			zap.String("remote_addr", remoteAddr),
			zap.String("controller", s.Controller()),
		)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "link busy"),
			time.Now().Add(writeWait))
		return
	}
	defer s.release(remoteAddr)

	logging.Info("Controller connected",
		zap.String("remote_addr", remoteAddr),
	)

	// Pump bytes from the camera link back to the client until the
	// client loop exits.
	done := make(chan struct{})
	var pumpWG sync.WaitGroup
	pumpWG.Add(1)
	go func() {
		defer pumpWG.Done()
		s.pumpLink(conn, remoteAddr, done)
	}()

	s.clientLoop(conn, remoteAddr)

	close(done)
	pumpWG.Wait()

	logging.Info("Controller disconnected",
		zap.String("remote_addr", remoteAddr),
	)
}

// clientLoop reads frames from the client and forwards them to the
// link. Returns when the client disconnects or sends something the
// bridge refuses to forward.
func (s *Server) clientLoop(conn *websocket.Conn, remoteAddr string) {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
			return
		}

		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Controller connection error",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		if msgType != websocket.BinaryMessage {
			logging.Warn("Ignoring non-binary message from controller",
				zap.String("remote_addr", remoteAddr),
				zap.Int("type", msgType),
			)
			continue
		}

		msg, err := protocol.Decode(payload)
		if err != nil {
			logging.Warn("Refusing to forward invalid frame",
				zap.String("remote_addr", remoteAddr),
				zap.String("frame", logging.HexDump(payload)),
				zap.Error(err),
			)
			s.writeClose(conn, websocket.CloseUnsupportedData, err.Error())
			return
		}

		logging.LogFrame("client->camera", msg.Address(), msg.Bytes())

		if err := s.port.SendMessage(msg); err != nil {
			logging.Error("Failed to write frame to camera link",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			s.writeClose(conn, websocket.CloseInternalServerErr, "link write failed")
			return
		}
	}
}

// pumpLink copies camera-to-host bytes to the client as binary
// messages. The pump must observe done even when the camera stays
// silent: serial links report zero bytes and no error on their
// configured read timeout, and links that support read deadlines are
// re-armed every pumpPollInterval so a blocked Read wakes up. A
// terminal read error ends the pump.
func (s *Server) pumpLink(conn *websocket.Conn, remoteAddr string, done <-chan struct{}) {
	dr, hasDeadline := s.link.(deadlineReader)
	buf := make([]byte, pumpBufSize)
	for {
		select {
		case <-done:
			return
		default:
		}

		if hasDeadline {
			_ = dr.SetReadDeadline(time.Now().Add(pumpPollInterval))
		}

		n, err := s.link.Read(buf)
		if n > 0 {
			logging.LogFrame("camera->client", 0, buf[:n])
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if !errors.Is(err, io.EOF) {
				logging.Error("Camera link read error",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (s *Server) writeClose(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait))
}
