package usersdk

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	// Name is the display name for the new account
	Name string `json:"name"`

	// Email must not be owned by any existing account
	Email string `json:"email"`

	// Password is the plaintext password; it is hashed before storage and
	// never persisted or logged as-is
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user. The password hash is
// never part of any response.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is returned from a successful login.
type LoginResponse struct {
	// Token is the opaque bearer token to present on protected calls
	Token string `json:"token"`

	// User is the public view of the authenticated account
	User UserResponse `json:"user"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. Every field is
// optional; absent or blank fields leave the stored value unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// HealthResponse is returned from the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies for readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
