package domain

// StatsOverview is the admin-only aggregate returned by the backend's
// stats endpoint.
type StatsOverview struct {
	TotalCafes     int                `json:"totalCafes"`
	TotalSeats     int                `json:"totalSeats"`
	AvailableSeats int                `json:"availableSeats"`
	ByStatus       map[CafeStatus]int `json:"byStatus"`
}
