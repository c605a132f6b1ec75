package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/copperline/userhub/internal/users/service"
	"github.com/copperline/userhub/pkg/httpx"
	"github.com/copperline/userhub/pkg/slogx"
	"github.com/copperline/userhub/pkg/usersdk"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleRegister handles POST /api/auth/register
//
//	@Summary		Register a new user
//	@Description	Create a new user account with name, email and password. Email must be unique.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	usersdk.UserResponse	"User created successfully"
//	@Failure		400		{object}	usersdk.ErrorResponse	"Invalid input or email already exists"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req usersdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		usersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Password) == "" ||
		!validEmail(req.Email) {
		usersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	view, err := h.UserService.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, usersdk.UserResponse{
		ID:    view.ID,
		Name:  view.Name,
		Email: view.Email,
	})
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Login user
//	@Description	Authenticate user with email and password. Returns a JWT token for API access.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.LoginRequest	true	"Login request"
//	@Success		200		{object}	usersdk.LoginResponse	"token and user"
//	@Failure		401		{object}	usersdk.ErrorResponse	"Invalid email or password"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req usersdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		usersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if req.Email == "" || req.Password == "" {
		usersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token, view, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.LoginResponse{
		Token: token,
		User: usersdk.UserResponse{
			ID:    view.ID,
			Name:  view.Name,
			Email: view.Email,
		},
	})
}

// validEmail is a light sanity check; real validation happens at delivery
// time, not registration time.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
