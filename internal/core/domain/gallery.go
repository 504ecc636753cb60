package domain

import "time"

const (
	CategoryIoT       = "iot"
	CategoryEVehicles = "e-vehicles"
	CategoryAI        = "ai"
	CategoryHardware  = "hardware"
	CategorySoftware  = "software"
	CategoryVLSI      = "vlsi"

	// CategoryAll is a listing pseudo-category meaning "no filter".
	CategoryAll = "all"
)

var Categories = []string{
	CategoryIoT, CategoryEVehicles, CategoryAI,
	CategoryHardware, CategorySoftware, CategoryVLSI,
}

var categoryLabels = map[string]string{
	CategoryIoT:       "IoT",
	CategoryEVehicles: "E-Vehicles",
	CategoryAI:        "AI",
	CategoryHardware:  "Hardware",
	CategorySoftware:  "Software",
	CategoryVLSI:      "VLSI",
	CategoryAll:       "All Projects",
}

func ValidCategory(s string) bool { return contains(Categories, s) }

// CategoryLabel returns the display name for a category.
func CategoryLabel(category string) string {
	if l, ok := categoryLabels[category]; ok {
		return l
	}
	return category
}

// GalleryItem is a showcased piece of work. Inactive items are hidden from
// the public listing but kept for admins.
type GalleryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryCount is the number of active gallery items in one category.
type CategoryCount struct {
	Category string
	Count    int64
}
