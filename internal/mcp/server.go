// ABOUTME: MCP server setup for the gym store.
// ABOUTME: Holds the repository and the live workout sessions started through tools.
package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/records"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
)

// Server wraps the MCP server with storage access and open sessions.
type Server struct {
	mcpServer     *mcp.Server
	repo          storage.Repository
	deriveRecords bool
	ticks         timer.TickSource

	mu       sync.Mutex
	sessions map[string]*liveSession
	watches  []*storage.LiveQuery

	stopWatches context.CancelFunc
}

// liveSession is a session started through a tool call. derived holds the
// personal records its finish created; only the finalize hook writes it.
type liveSession struct {
	*session.Session
	derived []*models.PersonalRecord
}

// Option configures a Server.
type Option func(*Server)

// WithDeriveRecords turns automatic personal records on or off for
// workouts finished through the server.
func WithDeriveRecords(on bool) Option {
	return func(s *Server) {
		s.deriveRecords = on
	}
}

// WithTickSource drives session timers from src instead of the wall clock.
func WithTickSource(src timer.TickSource) Option {
	return func(s *Server) {
		s.ticks = src
	}
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	s := &Server{
		repo:          repo,
		deriveRecords: true,
		sessions:      make(map[string]*liveSession),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "gym",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			SubscribeHandler:   s.handleSubscribe,
			UnsubscribeHandler: s.handleUnsubscribe,
		},
	)

	s.registerTools()
	s.registerResources()
	s.startWatches()

	return s, nil
}

// Serve starts the MCP server using stdio transport. Sessions still open
// when it returns are cancelled.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close stops resource notifications and cancels every open session
// without saving it.
func (s *Server) Close() {
	s.mu.Lock()
	watches := s.watches
	s.watches = nil
	for id, sess := range s.sessions {
		if err := sess.Cancel(); err == nil {
			logrus.WithField("session", id).Info("cancelled unfinished workout session")
		}
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	// The dashboard read inside a watch takes mu.
	if s.stopWatches != nil {
		s.stopWatches()
	}
	for _, lq := range watches {
		lq.Stop()
	}
}

func (s *Server) newSessionOptions(ls *liveSession) []session.Option {
	var opts []session.Option
	if s.ticks != nil {
		opts = append(opts, session.WithTracker(timer.New(timer.WithTickSource(s.ticks))))
	}
	if s.deriveRecords {
		opts = append(opts, session.WithFinalizeHook(func(ctx context.Context, w *models.Workout) error {
			prs, err := records.Derive(ctx, s.repo, w)
			ls.derived = prs
			return err
		}))
	}
	return opts
}
