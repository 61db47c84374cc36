package entity

// User is the local mirror of an identity provider account. Rows are
// provisioned by the provider webhook, never by a signup flow.
type User struct {
	Base
	ExternalID string `db:"external_id"`
	Email      string `db:"email"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
}
