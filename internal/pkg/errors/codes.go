package errors

import "net/http"

var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Meetup session not found",
		http.StatusNotFound,
	)

	ErrEventNotFound = New(
		"EVENT_NOT_FOUND",
		"Calendar event not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrNoStartingPoint = New(
		"NO_STARTING_POINT",
		"Set at least one starting point (a friend, yourself or a manual location)",
		http.StatusBadRequest,
	)

	ErrRegionNotCandidate = New(
		"REGION_NOT_CANDIDATE",
		"Selected region is not in the current candidate list",
		http.StatusBadRequest,
	)

	ErrInvalidPurpose = New(
		"INVALID_PURPOSE",
		"Invalid meetup purpose",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrRecommenderError = New(
		"RECOMMENDER_ERROR",
		"Recommendation service request failed",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
