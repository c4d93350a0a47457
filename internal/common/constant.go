// Package common contains shared constants and sentinel errors used across
// fitlog components.
package common

// AuthHeaderName is the HTTP header carrying the bearer access token.
const AuthHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthHeaderName.
const BearerPrefix = "Bearer "

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire layout of times of day.
const TimeLayout = "15:04:05"
