package handlers

// HandlerBundle aggregates the handlers wired in main and consumed by the
// routes package.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Calendar     *CalendarHandler
}
