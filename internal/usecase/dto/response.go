package dto

import (
	"github.com/wemeet-microservice/internal/domain"
	"github.com/wemeet-microservice/internal/pkg/utils"
)

// CandidateRegionDTO - candidate meeting area for display. Distance is the
// ranking value in raw degrees; DistanceM is the haversine distance from the
// centroid in meters, for humans.
type CandidateRegionDTO struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Distance  float64 `json:"distance"`
	DistanceM float64 `json:"distance_m,omitempty"`
}

// SessionResponse - full view of a meetup session
type SessionResponse struct {
	ID              string               `json:"id"`
	OwnerID         int64                `json:"owner_id"`
	Participants    []domain.Participant `json:"participants"`
	ManualLocations []string             `json:"manual_locations"`
	Purpose         string               `json:"purpose"`
	Tags            []string             `json:"tags"`
	Centroid        *domain.Coordinate   `json:"centroid,omitempty"`
	Candidates      []CandidateRegionDTO `json:"candidates"`
	SelectedRegion  *CandidateRegionDTO  `json:"selected_region,omitempty"`
	Results         []domain.PlaceResult `json:"results"`
	Refreshing      bool                 `json:"refreshing"`
	RequestSeq      uint64               `json:"request_seq"`
	AppliedSeq      uint64               `json:"applied_seq"`
}

// CandidatesResponse - stateless candidate computation result
type CandidatesResponse struct {
	Centroid   domain.Coordinate    `json:"centroid"`
	Candidates []CandidateRegionDTO `json:"candidates"`
}

// RecommendationsResponse - last held place results for a session
type RecommendationsResponse struct {
	Results    []domain.PlaceResult `json:"results"`
	Refreshing bool                 `json:"refreshing"`
	AppliedSeq uint64               `json:"applied_seq"`
}

// HotspotsResponse - the static hotspot reference list
type HotspotsResponse struct {
	Hotspots []domain.NamedHotspot `json:"hotspots"`
	Total    int                   `json:"total"`
}

// FriendsResponse - stored friend profiles
type FriendsResponse struct {
	Friends []domain.Friend `json:"friends"`
	Total   int             `json:"total"`
}

// PurposesResponse - the purpose/filter-tag catalog
type PurposesResponse struct {
	Purposes []domain.PurposeOption `json:"purposes"`
}

// ConvertCandidate enriches a candidate region with the meter distance
// from the given centroid
func ConvertCandidate(c domain.CandidateRegion, centroid *domain.Coordinate) CandidateRegionDTO {
	out := CandidateRegionDTO{
		Name:     c.Name,
		Lat:      c.Lat,
		Lng:      c.Lng,
		Distance: c.Distance,
	}
	if centroid != nil {
		out.DistanceM = utils.HaversineDistance(centroid.Lat, centroid.Lng, c.Lat, c.Lng) * 1000
	}
	return out
}

// ConvertSession builds the full session view
func ConvertSession(s *domain.MeetupSession) *SessionResponse {
	candidates := make([]CandidateRegionDTO, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		candidates = append(candidates, ConvertCandidate(c, s.Centroid))
	}

	var selected *CandidateRegionDTO
	if s.SelectedRegion != nil {
		dto := ConvertCandidate(*s.SelectedRegion, s.Centroid)
		selected = &dto
	}

	results := s.Results
	if results == nil {
		results = []domain.PlaceResult{}
	}
	manual := s.ManualLocations
	if manual == nil {
		manual = []string{}
	}

	return &SessionResponse{
		ID:              s.ID.String(),
		OwnerID:         s.OwnerID,
		Participants:    s.Participants,
		ManualLocations: manual,
		Purpose:         s.Purpose,
		Tags:            s.Tags,
		Centroid:        s.Centroid,
		Candidates:      candidates,
		SelectedRegion:  selected,
		Results:         results,
		Refreshing:      s.Refreshing,
		RequestSeq:      s.RequestSeq,
		AppliedSeq:      s.AppliedSeq,
	}
}
