package domain

// NamedHotspot - a static, named candidate meeting area with a fixed
// reference coordinate. The list is immutable at runtime and loaded once
// at startup.
type NamedHotspot struct {
	Name string  `json:"name" db:"name"`
	Lat  float64 `json:"lat" db:"lat"`
	Lng  float64 `json:"lng" db:"lng"`
}

// DefaultHotspots returns the built-in Seoul hotspot list. It doubles as
// the database seed and as the fallback when the hotspots table is empty.
func DefaultHotspots() []NamedHotspot {
	return []NamedHotspot{
		{Name: "을지로", Lat: 37.566, Lng: 126.991},
		{Name: "종로", Lat: 37.571, Lng: 126.985},
		{Name: "약수", Lat: 37.551, Lng: 127.011},
		{Name: "명동", Lat: 37.561, Lng: 126.985},
		{Name: "동대문", Lat: 37.571, Lng: 127.009},
		{Name: "신촌", Lat: 37.555, Lng: 126.937},
		{Name: "한남동", Lat: 37.536, Lng: 127.011},
		{Name: "이태원", Lat: 37.534, Lng: 126.994},
		{Name: "성수", Lat: 37.544, Lng: 127.056},
		{Name: "강남", Lat: 37.498, Lng: 127.027},
	}
}
