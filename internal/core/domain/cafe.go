package domain

import (
	"math"
	"time"
)

// CafeStatus is the denormalized availability state of a café. It is set
// explicitly by admins and never derived from the seat counts client-side.
type CafeStatus string

const (
	StatusAvailable CafeStatus = "Available"
	StatusFilling   CafeStatus = "Filling"
	StatusFull      CafeStatus = "Full"
)

// AllStatuses lists every valid café status, in display order.
var AllStatuses = []CafeStatus{StatusAvailable, StatusFilling, StatusFull}

// Valid reports whether s is one of the known statuses.
func (s CafeStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusFilling, StatusFull:
		return true
	}
	return false
}

// NoiseLevel describes the ambient noise of a café.
type NoiseLevel string

const (
	NoiseQuiet    NoiseLevel = "Quiet"
	NoiseModerate NoiseLevel = "Moderate"
	NoiseLoud     NoiseLevel = "Loud"
)

// Valid reports whether n is one of the known noise levels.
func (n NoiseLevel) Valid() bool {
	switch n {
	case NoiseQuiet, NoiseModerate, NoiseLoud:
		return true
	}
	return false
}

const (
	// DefaultEmoji is shown when a café record carries no emoji of its own.
	DefaultEmoji = "☕"
	// DefaultPhotoURL is the stock image substituted at render time when a
	// café record has no photo.
	DefaultPhotoURL = "https://images.unsplash.com/photo-1509042239860-f550ce710b93?auto=format&fit=crop&w=800&q=80"
)

// DayHours is a single open/close pair, both as "HH:MM" times of day.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// OpeningHours groups the three schedules a café publishes.
type OpeningHours struct {
	Weekday  DayHours `json:"weekday"`
	Saturday DayHours `json:"saturday"`
	Sunday   DayHours `json:"sunday"`
}

// DefaultHours returns the client-side fallback schedule used when a record
// omits its hours.
func DefaultHours() OpeningHours {
	return OpeningHours{
		Weekday:  DayHours{Open: "07:00", Close: "23:00"},
		Saturday: DayHours{Open: "09:00", Close: "21:00"},
		Sunday:   DayHours{Open: "10:00", Close: "20:00"},
	}
}

// Amenities is the set of boolean amenity flags a café advertises.
type Amenities struct {
	Wifi          bool `json:"wifi"`
	PowerOutlets  bool `json:"powerOutlets"`
	QuietZone     bool `json:"quietZone"`
	FoodAvailable bool `json:"foodAvailable"`
}

// DefaultAmenities returns the client-side fallback amenity flags.
func DefaultAmenities() Amenities {
	return Amenities{Wifi: true, PowerOutlets: true, QuietZone: false, FoodAvailable: true}
}

// Cafe is the central entity: one campus café record as served by the
// backend. The id is opaque, server-assigned and immutable. Optional nested
// structures are pointers so that absence on the wire is distinguishable
// from a zero value; ApplyDefaults fills them in for display.
type Cafe struct {
	ID             string        `json:"_id,omitempty"`
	Name           string        `json:"name"`
	Location       string        `json:"location"`
	Description    string        `json:"description,omitempty"`
	Emoji          string        `json:"emoji,omitempty"`
	Photo          string        `json:"photo,omitempty"`
	TotalSeats     int           `json:"totalSeats"`
	AvailableSeats int           `json:"availableSeats"`
	Status         CafeStatus    `json:"status"`
	Hours          *OpeningHours `json:"hours,omitempty"`
	Amenities      *Amenities    `json:"amenities,omitempty"`
	NoiseLevel     NoiseLevel    `json:"noiseLevel,omitempty"`
	UpdatedAt      time.Time     `json:"updatedAt,omitempty"`
}

// ApplyDefaults returns a copy of the café with every optional field
// populated by its client-side fallback. Fetched records pass through here
// before display; the originals from the backend are never mutated.
func (c Cafe) ApplyDefaults() Cafe {
	if c.Emoji == "" {
		c.Emoji = DefaultEmoji
	}
	if c.Photo == "" {
		c.Photo = DefaultPhotoURL
	}
	if c.Hours == nil {
		h := DefaultHours()
		c.Hours = &h
	}
	if c.Amenities == nil {
		a := DefaultAmenities()
		c.Amenities = &a
	}
	if c.NoiseLevel == "" {
		c.NoiseLevel = NoiseModerate
	}
	return c
}

// OccupiedSeats returns the number of seats currently taken.
func (c Cafe) OccupiedSeats() int {
	return c.TotalSeats - c.AvailableSeats
}

// OccupancyPercent returns round((total-available)/total*100). A café with
// zero total seats reports 0% rather than dividing by zero.
func (c Cafe) OccupancyPercent() int {
	if c.TotalSeats <= 0 {
		return 0
	}
	return int(math.Round(float64(c.OccupiedSeats()) / float64(c.TotalSeats) * 100))
}
