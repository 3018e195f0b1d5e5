package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bertram-labs/blog-agent/internal/config"
)

// AuthHandler issues API tokens. Credentials come from the environment:
// API_USERNAME and API_PASSWORD_HASH (a bcrypt hash).
type AuthHandler struct {
	passwords  *config.PasswordConfig
	jwtService *JWTService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(passwords *config.PasswordConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{passwords: passwords, jwtService: jwtService}
}

// TokenRequest is the request body for /api/auth/token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Token verifies credentials and issues a JWT.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	username := os.Getenv("API_USERNAME")
	passwordHash := os.Getenv("API_PASSWORD_HASH")
	if username == "" || passwordHash == "" {
		writeJSONError(w, http.StatusServiceUnavailable, "authentication is not configured")
		return
	}

	if req.Username != username || !h.passwords.VerifyPassword(req.Password, passwordHash) {
		writeJSONError(w, HTTPStatus(&ErrInvalidCredentials{}), (&ErrInvalidCredentials{}).Error())
		return
	}

	token, err := h.jwtService.GenerateToken(uuid.New())
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TokenResponse{Token: token}); err != nil {
		log.Printf("Error encoding token response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
