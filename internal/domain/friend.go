package domain

// Friend - a stored friend profile used to resolve participants by id
type Friend struct {
	ID               int64               `json:"id" db:"id"`
	Name             string              `json:"name" db:"name"`
	Avatar           string              `json:"avatar" db:"avatar"`
	Lat              float64             `json:"lat" db:"lat"`
	Lng              float64             `json:"lng" db:"lng"`
	FavoritePlaceIDs []int64             `json:"favorite_place_ids"`
	Preferences      map[string][]string `json:"preferences,omitempty"`
}

// ToParticipant converts a friend profile into an ephemeral participant
func (f *Friend) ToParticipant() Participant {
	return Participant{
		ID:               f.ID,
		DisplayName:      f.Name,
		Coordinate:       Coordinate{Lat: f.Lat, Lng: f.Lng},
		FavoritePlaceIDs: f.FavoritePlaceIDs,
		Preferences:      f.Preferences,
	}
}
