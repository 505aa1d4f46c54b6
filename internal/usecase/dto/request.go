package dto

// ParticipantInput - an explicit participant supplied by the caller
// (typically "myself"; friends are usually referenced by id instead)
type ParticipantInput struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name" validate:"required"`
	Lat              float64             `json:"lat" validate:"min=-90,max=90"`
	Lng              float64             `json:"lng" validate:"min=-180,max=180"`
	FavoritePlaceIDs []int64             `json:"favorite_place_ids,omitempty"`
	Preferences      map[string][]string `json:"preferences,omitempty"`
}

// CreateSessionRequest - starts a new meetup session
type CreateSessionRequest struct {
	OwnerID         int64              `json:"owner_id"`
	FriendIDs       []int64            `json:"friend_ids,omitempty"`
	Participants    []ParticipantInput `json:"participants,omitempty" validate:"omitempty,dive"`
	ManualLocations []string           `json:"manual_locations,omitempty" validate:"omitempty,max=10"`
	Purpose         string             `json:"purpose,omitempty"`
	Tags            []string           `json:"tags,omitempty" validate:"omitempty,max=20"`
}

// ReplaceParticipantsRequest - replaces the participant set wholesale.
// The selected region always resets to the nearest candidate afterwards.
type ReplaceParticipantsRequest struct {
	FriendIDs       []int64            `json:"friend_ids,omitempty"`
	Participants    []ParticipantInput `json:"participants,omitempty" validate:"omitempty,dive"`
	ManualLocations []string           `json:"manual_locations,omitempty" validate:"omitempty,max=10"`
}

// SetFiltersRequest - updates purpose and/or filter tags
type SetFiltersRequest struct {
	Purpose string   `json:"purpose,omitempty"`
	Tags    []string `json:"tags" validate:"max=20"`
}

// SelectRegionRequest - user-driven override of the targeted candidate
type SelectRegionRequest struct {
	Name string `json:"name" validate:"required"`
}

// ComputeCandidatesRequest - stateless candidate computation
type ComputeCandidatesRequest struct {
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
}

// CreateEventRequest - new personal calendar event
type CreateEventRequest struct {
	UserID        int64   `json:"user_id" validate:"required"`
	Title         string  `json:"title" validate:"required,max=200"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time" validate:"required,datetime=15:04"`
	DurationHours float64 `json:"duration_hours" validate:"omitempty,min=0.5,max=24"`
	LocationName  string  `json:"location_name,omitempty"`
	Purpose       string  `json:"purpose,omitempty"`
}

// UpdateEventRequest - full update of a calendar event
type UpdateEventRequest struct {
	Title         string  `json:"title" validate:"required,max=200"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time" validate:"required,datetime=15:04"`
	DurationHours float64 `json:"duration_hours" validate:"omitempty,min=0.5,max=24"`
	LocationName  string  `json:"location_name,omitempty"`
	Purpose       string  `json:"purpose,omitempty"`
}
