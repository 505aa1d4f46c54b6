package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wemeet-microservice/internal/config"
	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a client for the external recommendation service
func NewClient(cfg *config.RecommenderConfig, logger *zap.Logger) repository.RecommenderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// wireUser - participant as the collaborator expects it
type wireUser struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Location       domain.Coordinate   `json:"location"`
	HistoryPOIIDs  []int64             `json:"history_poi_ids,omitempty"`
	Preferences    map[string][]string `json:"preferences,omitempty"`
}

type wireRequest struct {
	Users            []wireUser `json:"users"`
	Purpose          string     `json:"purpose"`
	LocationName     string     `json:"location_name"`
	CurrentLat       float64    `json:"current_lat"`
	CurrentLng       float64    `json:"current_lng"`
	ManualLocations  []string   `json:"manual_locations"`
	UserSelectedTags []string   `json:"user_selected_tags"`
}

type wirePlace struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Score    float64   `json:"score"`
	Tags     []string  `json:"tags"`
	Location []float64 `json:"location"`
}

// Recommend POSTs the assembled payload to /api/recommend and returns the
// place list with scores normalized to the canonical 0-100 scale.
func (c *client) Recommend(ctx context.Context, req *domain.RecommendationRequest) ([]domain.PlaceResult, error) {
	if req == nil {
		return nil, fmt.Errorf("recommendation request cannot be nil")
	}

	users := make([]wireUser, 0, len(req.Users))
	for _, p := range req.Users {
		users = append(users, wireUser{
			ID:            p.ID,
			Name:          p.DisplayName,
			Location:      p.Coordinate,
			HistoryPOIIDs: p.FavoritePlaceIDs,
			Preferences:   p.Preferences,
		})
	}

	body := wireRequest{
		Users:            users,
		Purpose:          req.Purpose,
		LocationName:     req.LocationName,
		CurrentLat:       req.CurrentLat,
		CurrentLng:       req.CurrentLng,
		ManualLocations:  req.ManualLocations,
		UserSelectedTags: req.Tags,
	}
	if body.ManualLocations == nil {
		body.ManualLocations = []string{}
	}
	if body.UserSelectedTags == nil {
		body.UserSelectedTags = []string{}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/api/recommend"

	c.logger.Debug("Calling recommendation service",
		zap.String("url", url),
		zap.String("purpose", req.Purpose),
		zap.String("location_name", req.LocationName),
		zap.Int("users_count", len(users)),
		zap.Int("manual_locations_count", len(body.ManualLocations)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Recommendation service returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("recommendation service error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var places []wirePlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]domain.PlaceResult, 0, len(places))
	for _, p := range places {
		result := domain.PlaceResult{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Score:    NormalizeScore(p.Score),
			Tags:     p.Tags,
		}
		if len(p.Location) >= 2 {
			result.Lat = p.Location[0]
			result.Lng = p.Location[1]
		}
		results = append(results, result)
	}

	c.logger.Debug("Recommendation service call successful",
		zap.Int("places_count", len(results)))

	return results, nil
}

// NormalizeScore maps the collaborator's inconsistent score scales
// (0-1 fraction, 0-10 or 0-100) onto a canonical 0-100 scale.
func NormalizeScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	switch {
	case score <= 1:
		score *= 100
	case score <= 10:
		score *= 10
	}
	if score > 100 {
		return 100
	}
	return score
}
