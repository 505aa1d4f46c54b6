package domain

import (
	"time"

	"github.com/google/uuid"
)

// CandidateRegion - a hotspot ranked by its distance from the participants'
// centroid. Distance is in raw degree space (see utils.DegreeDistance).
type CandidateRegion struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distance"`
}

// PlaceResult - opaque record from the recommendation collaborator.
// Score is normalized to the canonical 0-100 scale at the client boundary
// and never mutated afterwards.
type PlaceResult struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Tags     []string `json:"tags"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
}

// MeetupSession - the single owner of all mutable midpoint-selection state.
// Created on demand, mutated only through the usecase, discarded explicitly
// or via Redis TTL. Replaces the ambient module-level state of the original
// client.
type MeetupSession struct {
	ID              uuid.UUID        `json:"id"`
	OwnerID         int64            `json:"owner_id"`
	Participants    []Participant    `json:"participants"`
	ManualLocations []string         `json:"manual_locations"`
	Purpose         string           `json:"purpose"`
	Tags            []string         `json:"tags"`
	Centroid        *Coordinate      `json:"centroid,omitempty"`
	Candidates      []CandidateRegion `json:"candidates"`
	SelectedRegion  *CandidateRegion `json:"selected_region,omitempty"`
	Results         []PlaceResult    `json:"results"`

	// RequestSeq is bumped on every mutation that triggers a refresh.
	// AppliedSeq records the sequence of the last applied response.
	// A response is applied only when its sequence equals RequestSeq,
	// so the last issued request always wins regardless of arrival order.
	RequestSeq uint64 `json:"request_seq"`
	AppliedSeq uint64 `json:"applied_seq"`
	Refreshing bool   `json:"refreshing"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStartingPoint reports whether the session can anchor a midpoint:
// at least one participant with a coordinate, or at least one non-empty
// trimmed manual location. A manual entry counts purely on string content,
// not on whether it resolves to a real place.
func (s *MeetupSession) HasStartingPoint() bool {
	if len(s.Participants) > 0 {
		return true
	}
	return len(TrimManualLocations(s.ManualLocations)) > 0
}

// IsCandidate reports whether a region name is in the current candidate list
func (s *MeetupSession) IsCandidate(name string) bool {
	for _, c := range s.Candidates {
		if c.Name == name {
			return true
		}
	}
	return false
}

// RecommendationRequest - payload for the recommendation collaborator,
// assembled fresh per outgoing call and discarded after the response.
type RecommendationRequest struct {
	Users           []Participant
	Purpose         string
	LocationName    string
	CurrentLat      float64
	CurrentLng      float64
	ManualLocations []string
	Tags            []string
}
