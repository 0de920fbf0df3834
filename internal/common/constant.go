package common

const (
	// AuthorizationHeaderName carries the bearer access token on protected calls.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
