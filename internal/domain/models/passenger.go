package models

// Passenger is the account row behind login, registration and the profile
// lookup. The password hash never leaves the auth handlers, so it is not a
// field here. The rest of the booking schema only ever feeds aggregate
// queries and is scanned straight into the report records.
type Passenger struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_address"`
}
