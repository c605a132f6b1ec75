package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/copperline/userhub/internal/users/service"
	"github.com/copperline/userhub/pkg/httpx"
	"github.com/copperline/userhub/pkg/slogx"
	"github.com/copperline/userhub/pkg/usersdk"
)

// UsersHandler handles the authenticated user CRUD endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /api/users
//
//	@Summary		Get all users
//	@Description	Retrieve a list of all registered users. Requires JWT authentication.
//	@Tags			User Management
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		usersdk.UserResponse	"Users retrieved successfully"
//	@Failure		401	{object}	usersdk.ErrorResponse	"Unauthorized - JWT token required"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.UserService.List(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]usersdk.UserResponse, 0, len(views))
	for _, v := range views {
		out = append(out, usersdk.UserResponse{ID: v.ID, Name: v.Name, Email: v.Email})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/users/{id}
//
//	@Summary		Get user by ID
//	@Description	Retrieve a specific user by their ID. Requires JWT authentication.
//	@Tags			User Management
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"User ID"
//	@Success		200	{object}	usersdk.UserResponse	"User found"
//	@Failure		404	{object}	usersdk.ErrorResponse	"User not found"
//	@Failure		401	{object}	usersdk.ErrorResponse	"Unauthorized - JWT token required"
//	@Router			/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	view, err := h.UserService.Get(ctx, id)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.UserResponse{
		ID:    view.ID,
		Name:  view.Name,
		Email: view.Email,
	})
}

// HandleUpdate handles PUT /api/users/{id}
//
//	@Summary		Update user
//	@Description	Update user information. Only provided, non-blank fields are applied. Requires JWT authentication.
//	@Tags			User Management
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User ID"
//	@Param			request	body		usersdk.UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	usersdk.UserResponse		"User updated successfully"
//	@Failure		400		{object}	usersdk.ErrorResponse		"Invalid input or email already exists"
//	@Failure		404		{object}	usersdk.ErrorResponse		"User not found"
//	@Failure		401		{object}	usersdk.ErrorResponse		"Unauthorized - JWT token required"
//	@Router			/api/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req usersdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		usersdk.ErrInvalidRequest.WriteError(w)
		return
	}

	view, err := h.UserService.Update(ctx, id, service.UpdateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.UserResponse{
		ID:    view.ID,
		Name:  view.Name,
		Email: view.Email,
	})
}

// HandleDelete handles DELETE /api/users/{id}
//
//	@Summary		Delete user
//	@Description	Delete a user by their ID. This action cannot be undone. Requires JWT authentication.
//	@Tags			User Management
//	@Security		BearerAuth
//	@Param			id	path	int	true	"User ID"
//	@Success		204	"User deleted successfully"
//	@Failure		404	{object}	usersdk.ErrorResponse	"User not found"
//	@Failure		401	{object}	usersdk.ErrorResponse	"Unauthorized - JWT token required"
//	@Router			/api/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.UserService.Delete(ctx, id); err != nil {
		writeServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userID parses the {id} path value, writing a 400 on garbage.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		usersdk.ErrInvalidRequest.WriteError(w)
		return 0, false
	}
	return id, true
}
