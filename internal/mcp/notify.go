// ABOUTME: Resource change notifications for subscribed MCP clients.
// ABOUTME: A live query per resource sends resources/updated after writes to its tables.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/gym/internal/storage"
)

type resourceReader func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)

// watchedResource ties a resource to the tables its content is read from.
type watchedResource struct {
	uri    string
	read   resourceReader
	tables []storage.Table
}

func (s *Server) watchedResources() []watchedResource {
	return []watchedResource{
		{dashboardURI, s.handleDashboardResource, []storage.Table{storage.TableWorkouts, storage.TablePersonalRecords, storage.TableTemplates}},
		{recentWorkoutsURI, s.handleRecentWorkoutsResource, []storage.Table{storage.TableWorkouts, storage.TableExercises}},
		{exercisesURI, s.handleExercisesResource, []storage.Table{storage.TableExercises}},
	}
}

func (s *Server) handleSubscribe(ctx context.Context, req *mcp.SubscribeRequest) error {
	for _, r := range s.watchedResources() {
		if r.uri == req.Params.URI {
			return nil
		}
	}
	return fmt.Errorf("unknown resource: %s", req.Params.URI)
}

func (s *Server) handleUnsubscribe(ctx context.Context, req *mcp.UnsubscribeRequest) error {
	return nil
}

// startWatches re-reads each resource after writes to its tables and tells
// subscribers it changed. The read that runs when a watch starts sends nothing.
// A read that fails is logged and not announced.
func (s *Server) startWatches() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopWatches = cancel

	for _, r := range s.watchedResources() {
		uri := r.uri
		initial := true
		lq := storage.Watch(ctx, s.repo, func(ctx context.Context) (*mcp.ReadResourceResult, error) {
			return r.read(ctx, nil)
		}, func(_ *mcp.ReadResourceResult, err error) {
			if initial {
				initial = false
				return
			}
			if err != nil {
				if ctx.Err() == nil {
					logrus.WithError(err).WithField("uri", uri).Warn("resource refresh failed")
				}
				return
			}
			_ = s.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri})
		}, r.tables...)
		s.watches = append(s.watches, lq)
	}
}
