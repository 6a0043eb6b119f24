package domain

// Entry represents one recorded headache observation
type Entry struct {
	ID              string   `json:"id"`
	Score           float64  `json:"score"`
	Notes           string   `json:"notes,omitempty"`
	PotentialCauses []string `json:"potentialCauses"`
	Locations       []string `json:"locations"`
	TimeOfDay       string   `json:"timeOfDay,omitempty"`
	CreatedAt       int64    `json:"createdAt"` // epoch milliseconds, set once at insert
}

// EntryInput is the mutable content of an entry, as submitted on create or update
type EntryInput struct {
	Score           float64  `json:"score"`
	Notes           string   `json:"notes,omitempty"`
	PotentialCauses []string `json:"potentialCauses,omitempty"`
	Locations       []string `json:"locations,omitempty"`
	TimeOfDay       string   `json:"timeOfDay,omitempty"`
}

// Label suggestions offered by clients. Entries may carry arbitrary labels;
// these lists are never enforced anywhere.
var (
	PotentialCauses = []string{
		"Caffeine",
		"Alcohol",
		"Sleep deprivation",
		"Dehydration",
		"Stress",
		"Screen time",
		"Weather change",
		"Hunger",
		"Bright light",
		"Hormonal",
	}

	Locations = []string{
		"Left temple",
		"Right temple",
		"Back of head",
		"Front of head",
		"Left side",
		"Right side",
		"Top of head",
		"Whole head",
	}

	TimesOfDay = []string{"Morning", "Noon", "Afternoon", "Evening"}
)
