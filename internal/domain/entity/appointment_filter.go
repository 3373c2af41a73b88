package entity

// AppointmentFilter narrows appointment listings. Zero values mean the
// dimension is not filtered.
type AppointmentFilter struct {
	Type     string
	Status   string
	DateFrom string
	DateTo   string
	Search   string
	Limit    int
	Offset   int
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	AppointmentID string
	Status        string
	Search        string
	Limit         int
	Offset        int
}
