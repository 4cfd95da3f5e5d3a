package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/AnshRaj112/aih-backend/internal/services"
	"github.com/AnshRaj112/aih-backend/pkg/utils"
)

type MessageResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

type ErrorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type UserResponse struct {
	OK       bool    `json:"ok"`
	Username *string `json:"username"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// RegisterInfo answers GET /register.
func (h *Handler) RegisterInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{OK: true, Msg: "POST username,email,password to register"})
}

// Register creates an account and sends the client to the login page. An
// already registered username or email also ends on the login page rather
// than reporting a conflict.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	data := formData(r)
	username := strings.TrimSpace(data["username"])
	email := strings.ToLower(strings.TrimSpace(data["email"]))
	password := data["password"]

	if err := utils.RequireAll("email and password are required", "email", email, "password", password); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.accounts.CreateUser(r.Context(), username, email, password)
	switch {
	case err == nil:
		log.Printf("registered account %s", email)
	case errors.Is(err, services.ErrDuplicateKey):
		log.Printf("registration for %s hit an existing account, redirecting to login", email)
	default:
		log.Printf("ERROR: failed to create user: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "db_error", Detail: err.Error()})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginInfo answers GET /login.
func (h *Handler) LoginInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{OK: true, Msg: "POST identifier (username or email), password to login"})
}

// Login authenticates by username or email and starts a session. The 401
// detail tells the client which check failed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	data := formData(r)
	identifier := strings.TrimSpace(firstNonEmpty(data["username"], data["email"], data["identifier"]))
	password := data["password"]

	if err := utils.RequireAll("identifier and password required", "identifier", identifier, "password", password); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid_credentials", Detail: err.Error()})
			return
		}
		log.Printf("ERROR: login lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "db_error", Detail: err.Error()})
		return
	}

	if err := h.sessions.Start(r.Context(), w, r, user); err != nil {
		log.Printf("ERROR: failed to start session: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "session_error"})
		return
	}

	name := user.DisplayName()
	writeJSON(w, http.StatusOK, UserResponse{OK: true, Username: &name})
}

// Logout always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), w, r); err != nil {
		log.Printf("failed to drop session: %v", err)
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// Me reports the logged-in user, if any.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	name, ok := h.sessions.CurrentUser(r.Context(), r)
	if !ok {
		writeJSON(w, http.StatusOK, UserResponse{OK: false})
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{OK: true, Username: &name})
}
