package domain

// Meetup purposes. Keys travel on the wire to the recommendation
// collaborator; labels are the user-facing Korean names.
const (
	PurposeMeal     = "meal"
	PurposeBusiness = "business"
	PurposeDate     = "date"
	PurposeDrinking = "drinking"
	PurposeStudy    = "study"
	PurposeCafe     = "cafe"
)

// FilterGroup - one group of mutually related filter tags for a purpose
type FilterGroup struct {
	ID      string   `json:"id"`
	Options []string `json:"options"`
}

// PurposeOption - a purpose with its label and filter tag groups
type PurposeOption struct {
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Groups []FilterGroup `json:"groups"`
}

// PurposeCatalog returns the fixed purpose/filter catalog
func PurposeCatalog() []PurposeOption {
	return []PurposeOption{
		{
			Key:   PurposeMeal,
			Label: "식사",
			Groups: []FilterGroup{
				{ID: "type", Options: []string{"한식", "양식", "일식", "중식", "고기/구이"}},
				{ID: "price", Options: []string{"가성비", "보통", "고급"}},
				{ID: "vibe", Options: []string{"조용한", "시끌벅적", "노포감성"}},
			},
		},
		{
			Key:   PurposeBusiness,
			Label: "비즈니스",
			Groups: []FilterGroup{
				{ID: "activity", Options: []string{"회의/워크샵", "식사/접대", "티타임"}},
				{ID: "facility", Options: []string{"룸", "주차편한", "역세권"}},
			},
		},
		{
			Key:   PurposeDate,
			Label: "데이트",
			Groups: []FilterGroup{
				{ID: "type", Options: []string{"맛집", "카페", "술/와인", "문화/산책"}},
				{ID: "vibe", Options: []string{"로맨틱", "야경/뷰", "이색적인"}},
			},
		},
		{
			Key:   PurposeDrinking,
			Label: "술/회식",
			Groups: []FilterGroup{
				{ID: "type", Options: []string{"이자카야", "포차", "와인"}},
				{ID: "vibe", Options: []string{"시끌벅적", "조용한"}},
			},
		},
		{
			Key:    PurposeStudy,
			Label:  "스터디",
			Groups: []FilterGroup{},
		},
		{
			Key:   PurposeCafe,
			Label: "카페",
			Groups: []FilterGroup{
				{ID: "type", Options: []string{"디저트", "베이커리", "대형카페"}},
				{ID: "vibe", Options: []string{"카공/작업", "대화하기좋은", "감성"}},
			},
		},
	}
}

// IsValidPurpose checks a purpose key against the catalog
func IsValidPurpose(key string) bool {
	for _, p := range PurposeCatalog() {
		if p.Key == key {
			return true
		}
	}
	return false
}
