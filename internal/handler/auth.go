package handler

import (
	"net/http"
	"strconv"

	"keybox/internal/domain"
	"keybox/internal/service"
)

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /api/register
// Request:  {"username","email","password","full_name","age","gender"}
// Response: 200 success envelope with the created user's public fields.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Age      any    `json:"age"`
		Gender   string `json:"gender"`
	}
	if err := readJSON(r, &req); err != nil {
		writeDomainError(w, domain.ErrInvalidRequest)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Age:      ageString(req.Age),
		Gender:   req.Gender,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "User successfully registered!", toUserDTO(user))
}

// HandleToken processes a JSON token request.
// POST /api/token
// Request:  {"username","password"}
// Response: 200 {"access_token","expires_in"}
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeDomainError(w, domain.ErrMissingFields)
		return
	}

	token, expiresIn, err := h.auth.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeSuccess(w, "Access token generated successfully.", map[string]any{
		"access_token": token,
		"expires_in":   expiresIn,
	})
}

// ageString normalizes the age field, which callers send as either a
// JSON number or a numeric string.
func ageString(v any) string {
	switch age := v.(type) {
	case string:
		return age
	case float64:
		return strconv.FormatFloat(age, 'f', -1, 64)
	default:
		return ""
	}
}
