package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bee-edu/askbee/internal/api/middlewares"
	"github.com/bee-edu/askbee/internal/api/respond"
	"github.com/bee-edu/askbee/internal/models"
)

// CredentialStore is the slice of the user service the auth endpoints use.
type CredentialStore interface {
	Signup(ctx context.Context, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type AuthHandler struct {
	users CredentialStore
}

func NewAuthHandler(users CredentialStore) *AuthHandler {
	return &AuthHandler{users: users}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, tokenResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid body")
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email},
	})
}

// Me echoes the identity embedded in the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respond.JSON(w, http.StatusOK, userPayload{ID: id.UserID, Email: id.Email})
}
