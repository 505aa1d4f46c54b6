// Package docs WeMeet Microservice API.
//
// Backend service for finding a fair meeting point for a group.
// Computes the participants' midpoint, ranks candidate regions in Seoul
// and assembles place recommendations through an external recommendation
// service.
//
// Main capabilities:
// - Midpoint and candidate region computation from participant coordinates
// - Meetup sessions with participants, manual locations, purpose and filter tags
// - Place recommendations anchored to the selected region
// - Reference data: hotspots, friend profiles, purpose catalog
// - Personal calendar events
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
