// Package usersdk provides the request/response types of the userhub HTTP
// API and a small typed client for consuming it. The server's handlers use
// the same types, so the wire contract lives in exactly one place.
package usersdk
