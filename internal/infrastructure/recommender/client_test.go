package recommender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/config"
	"github.com/wemeet-microservice/internal/domain"
)

func TestClient_Recommend(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		var captured map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/recommend", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"id": 101, "name": "온기정", "category": "일식",
					"score": 0.87, "tags": []string{"조용한"},
					"location": []float64{37.551, 127.011},
				},
				{
					"id": 102, "name": "성수낙낙", "category": "카페",
					"score": 72.0, "tags": []string{},
					"location": []float64{37.544, 127.056},
				},
			})
		}))
		defer server.Close()

		cfg := &config.RecommenderConfig{
			BaseURL:        server.URL,
			RequestTimeout: 5,
		}
		client := NewClient(cfg, logger)

		req := &domain.RecommendationRequest{
			Users: []domain.Participant{
				{ID: 1, DisplayName: "나(안암)", Coordinate: domain.Coordinate{Lat: 37.586, Lng: 127.029}},
			},
			Purpose:      domain.PurposeMeal,
			LocationName: "약수",
			CurrentLat:   37.551,
			CurrentLng:   127.011,
			Tags:         []string{"조용한"},
		}

		results, err := client.Recommend(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, results, 2)

		// fractional score scaled to percentage, 0-100 score untouched
		assert.InDelta(t, 87.0, results[0].Score, 0.001)
		assert.InDelta(t, 72.0, results[1].Score, 0.001)
		assert.Equal(t, "온기정", results[0].Name)
		assert.Equal(t, 37.551, results[0].Lat)
		assert.Equal(t, 127.011, results[0].Lng)

		// wire payload shape
		assert.Equal(t, "meal", captured["purpose"])
		assert.Equal(t, "약수", captured["location_name"])
		assert.Equal(t, 37.551, captured["current_lat"])
		users, ok := captured["users"].([]interface{})
		require.True(t, ok)
		require.Len(t, users, 1)
		// manual_locations is always present, even when empty
		manual, ok := captured["manual_locations"].([]interface{})
		require.True(t, ok)
		assert.Empty(t, manual)
	})

	t.Run("manual locations forwarded verbatim", func(t *testing.T) {
		var captured map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		client := NewClient(&config.RecommenderConfig{BaseURL: server.URL, RequestTimeout: 5}, logger)

		req := &domain.RecommendationRequest{
			Purpose:         domain.PurposeCafe,
			LocationName:    "중간지점",
			ManualLocations: []string{"강남역", "홍대입구역"},
		}

		results, err := client.Recommend(context.Background(), req)
		require.NoError(t, err)
		assert.Empty(t, results)

		manual, ok := captured["manual_locations"].([]interface{})
		require.True(t, ok)
		require.Len(t, manual, 2)
		assert.Equal(t, "강남역", manual[0])
	})

	t.Run("non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"engine failure"}`))
		}))
		defer server.Close()

		client := NewClient(&config.RecommenderConfig{BaseURL: server.URL, RequestTimeout: 5}, logger)

		results, err := client.Recommend(context.Background(), &domain.RecommendationRequest{Purpose: domain.PurposeMeal})
		require.Error(t, err)
		assert.Nil(t, results)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("unparseable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(&config.RecommenderConfig{BaseURL: server.URL, RequestTimeout: 5}, logger)

		results, err := client.Recommend(context.Background(), &domain.RecommendationRequest{Purpose: domain.PurposeMeal})
		require.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("nil request", func(t *testing.T) {
		client := NewClient(&config.RecommenderConfig{BaseURL: "http://127.0.0.1:8000", RequestTimeout: 5}, logger)

		results, err := client.Recommend(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, results)
	})
}

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"fraction scaled to percentage", 0.87, 87.0},
		{"exactly one treated as fraction", 1.0, 100.0},
		{"ten-point scale multiplied by ten", 8.5, 85.0},
		{"percentage kept as-is", 72.0, 72.0},
		{"above hundred clamped", 130.0, 100.0},
		{"negative clamped to zero", -3.0, 0.0},
		{"zero stays zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, NormalizeScore(tt.in), 0.0001)
		})
	}
}
