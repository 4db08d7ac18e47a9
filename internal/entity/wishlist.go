package entity

import "time"

type WishlistStatus string

const (
	StatusWishlist WishlistStatus = "Wishlist"
	StatusPlanned  WishlistStatus = "Planned"
	StatusVisited  WishlistStatus = "Visited"
)

// ValidStatus reports whether s is one of the known wishlist statuses.
// There are no enforced transitions between them; any status may move to any other.
func ValidStatus(s WishlistStatus) bool {
	switch s {
	case StatusWishlist, StatusPlanned, StatusVisited:
		return true
	}
	return false
}

type SourceType string

const (
	SourceManual          SourceType = "manual"
	SourceDerivedFromLink SourceType = "derived_from_link"
)

// Activity is a sub-item embedded in exactly one Wishlist. It has no
// independent lifecycle; its ID is unique only within its parent.
type Activity struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	IsCompleted bool    `json:"is_completed"`
}

// Wishlist is a saved place with optional coordinates and embedded activities.
// Latitude and Longitude are either both set or both nil.
type Wishlist struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"user_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Status        WishlistStatus `json:"status"`
	Latitude      *float64       `json:"latitude"`
	Longitude     *float64       `json:"longitude"`
	GoogleMapsURL string         `json:"google_maps_url,omitempty"`
	SourceType    SourceType     `json:"source_type"`
	Activities    []Activity     `json:"activities"`
	CreatedAt     time.Time      `json:"created_at"`
}

// WishlistPatch is a partial update: nil fields leave the stored value
// untouched. ReplaceCoordinates forces latitude/longitude to be written even
// when nil, which happens when a new map link was re-extracted and the
// extraction came back empty.
type WishlistPatch struct {
	Name               *string
	Description        *string
	Status             *WishlistStatus
	Latitude           *float64
	Longitude          *float64
	GoogleMapsURL      *string
	SourceType         *SourceType
	ReplaceCoordinates bool
}

func (p *WishlistPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.Latitude == nil && p.Longitude == nil && p.GoogleMapsURL == nil &&
		p.SourceType == nil && !p.ReplaceCoordinates
}

// ActivityPatch is a partial update of one embedded activity.
type ActivityPatch struct {
	Name        *string
	Cost        *float64
	IsCompleted *bool
}

func (p *ActivityPatch) IsEmpty() bool {
	return p.Name == nil && p.Cost == nil && p.IsCompleted == nil
}
