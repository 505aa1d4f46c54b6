package domain

import "strings"

// Coordinate - WGS84 point
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Participant - one member of a meetup, ephemeral per session.
// Built from a friend profile, the requesting user, or caller-supplied data.
type Participant struct {
	ID               int64               `json:"id"`
	DisplayName      string              `json:"name"`
	Coordinate       Coordinate          `json:"location"`
	FavoritePlaceIDs []int64             `json:"history_poi_ids,omitempty"`
	Preferences      map[string][]string `json:"preferences,omitempty"`
}

// TrimManualLocations drops empty entries and trims the rest.
// Manual locations are never geocoded here; resolution is the
// recommendation collaborator's job.
func TrimManualLocations(locations []string) []string {
	result := make([]string, 0, len(locations))
	for _, loc := range locations {
		if trimmed := strings.TrimSpace(loc); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
