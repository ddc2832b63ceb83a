package dto

type PersonalBookingURLResponse struct {
	TemplateID string `json:"template_id"`
	Slug       string `json:"slug"`
	BookingURL string `json:"booking_url"`
}

type AvailabilitySlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	TemplateName string             `json:"template_name"`
	Slug         string             `json:"slug"`
	StartDate    string             `json:"start_date"`
	Slots        []AvailabilitySlot `json:"slots"`
}
