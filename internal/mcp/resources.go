// ABOUTME: MCP resource implementations for the gym store.
// ABOUTME: Provides gym://dashboard, gym://workouts/recent, and gym://exercises resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/report"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
)

const (
	dashboardURI      = "gym://dashboard"
	recentWorkoutsURI = "gym://workouts/recent"
	exercisesURI      = "gym://exercises"
)

// recentWorkoutLimit is how many workouts gym://workouts/recent returns.
const recentWorkoutLimit = 10

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Gym Dashboard",
		Description: "Workout totals, this week's count, recent workouts and personal records, and templates",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentWorkoutsURI,
		Name:        "Recent Workouts",
		Description: "Last 10 finished workouts with exercise names",
		MIMEType:    "application/json",
	}, s.handleRecentWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         exercisesURI,
		Name:        "Exercise Catalog",
		Description: "Every exercise grouped by category",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := report.Dashboard(ctx, s.repo, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	s.mu.Lock()
	open := len(s.sessions)
	s.mu.Unlock()

	result := map[string]interface{}{
		"generated_at":  time.Now().Format(time.RFC3339),
		"dashboard":     stats,
		"open_sessions": open,
	}
	return jsonResource(dashboardURI, result)
}

func (s *Server) handleRecentWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(ctx, storage.OrderedBy("date", true, recentWorkoutLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	names, err := s.exerciseNames(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]interface{}, 0, len(workouts))
	for _, w := range workouts {
		entries = append(entries, map[string]interface{}{
			"id":           w.ID,
			"name":         w.Name,
			"date":         w.Date.Format(time.RFC3339),
			"duration":     timer.Format(w.Duration),
			"total_volume": w.TotalVolume,
			"exercises":    exerciseViews(w.Exercises, names),
		})
	}

	return jsonResource(recentWorkoutsURI, map[string]interface{}{
		"workouts": entries,
		"count":    len(entries),
	})
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.repo.ListExercises(ctx, storage.All())
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	byCategory := make(map[string]interface{})
	for _, c := range models.AllCategories {
		byCategory[string(c)] = report.FilterExercises(exercises, "", string(c))
	}

	return jsonResource(exercisesURI, map[string]interface{}{
		"categories": byCategory,
		"count":      len(exercises),
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
