package constants

// User roles
const (
	RoleUser  = "user"
	RoleRider = "rider"
)

// Collection names in the document store
const (
	CollectionParcels        = "parcels"
	CollectionPayments       = "payments"
	CollectionTrackingEvents = "tracking_events"
	CollectionRiders         = "riders"
	CollectionUsers          = "users"
)

// Greeting served on the index route
const Greeting = "Everything will be good inshaallah."
