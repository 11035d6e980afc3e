package landmark

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/wall-blaster/parameter"
)

// Stats counts feed traffic
type Stats struct {
	Connections int32
	Received    uint64
	Delivered   uint64
	Dropped     uint64
	Malformed   uint64
}

// Server accepts WebSocket connections and forwards every decoded frame to out
// A full out channel drops the frame, the tracker tolerates skipped deliveries
type Server struct {
	out      chan<- Frame
	logger   *zap.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	connections atomic.Int32
	received    atomic.Uint64
	delivered   atomic.Uint64
	dropped     atomic.Uint64
	malformed   atomic.Uint64
}

// NewServer creates a feed server delivering to out
func NewServer(out chan<- Frame, logger *zap.Logger) *Server {
	return &Server{
		out:    out,
		logger: logger.With(zap.String("component", "landmark_feed")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			// Local tracker page served from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// Stats returns a snapshot of the counters
func (s *Server) Stats() Stats {
	return Stats{
		Connections: s.connections.Load(),
		Received:    s.received.Load(),
		Delivered:   s.delivered.Load(),
		Dropped:     s.dropped.Load(),
		Malformed:   s.malformed.Load(),
	}
}

// ServeHTTP upgrades the request and reads frames until the peer goes away
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	logger := s.logger.With(zap.String("conn", id), zap.String("remote", r.RemoteAddr))
	s.connections.Add(1)
	defer s.connections.Add(-1)
	logger.Info("tracker connected")

	conn.SetReadLimit(parameter.FeedReadLimit)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("tracker read failed", zap.Error(err))
			} else {
				logger.Info("tracker disconnected")
			}
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		s.received.Add(1)
		f, err := Decode(data)
		if err != nil {
			s.malformed.Add(1)
			logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		s.deliver(f)
	}
}

func (s *Server) deliver(f Frame) {
	if f.TimestampMs == 0 {
		f.TimestampMs = s.now().UnixMilli()
	}
	select {
	case s.out <- f:
		s.delivered.Add(1)
	default:
		s.dropped.Add(1)
	}
}

// ListenAndServe serves the feed on addr at path until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr, path string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, path)
}

// Serve serves the feed on an existing listener until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, s)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("landmark feed listening", zap.String("addr", ln.Addr().String()), zap.String("path", path))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
