// Package models defines the wire and domain types exchanged with the
// siniestros API and kept in local client state. JSON tags preserve the
// server's Spanish field names; Go identifiers are English.
package models

// Credentials is the HTTP Basic credential pair, persisted verbatim under
// the auth_credentials local-state key. The API owns the authentication
// protocol; the client only passes these through.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identity is the authenticated user's profile, persisted under the
// user_data local-state key.
type Identity struct {
	ID          int    `json:"id"`
	Username    string `json:"usuario"`
	DisplayName string `json:"nombre"`
	Role        string `json:"rol"`
}

// Session pairs an identity with the credentials it was established with.
// A session exists only while both records are present in local state.
type Session struct {
	Identity    Identity
	Credentials Credentials
}
