package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"google.golang.org/api/idtoken"

	"github.com/nextstep/nextstep-api/internal/config"
	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService  *UserService
	jwtService   *JWTService
	googleConfig *config.GoogleConfig // nil disables Google sign-in

	// verifyGoogleToken is swappable in tests; defaults to idtoken.Validate.
	verifyGoogleToken func(r *http.Request, token, audience string) (*idtoken.Payload, error)
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, googleConfig *config.GoogleConfig) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		jwtService:   jwtService,
		googleConfig: googleConfig,
		verifyGoogleToken: func(r *http.Request, token, audience string) (*idtoken.Payload, error) {
			return idtoken.Validate(r.Context(), token, audience)
		},
	}
}

// Signup handles account registration requests.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeSession(w, http.StatusCreated, user, "Account created")
}

// Signin handles email/password login requests.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req types.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeSession(w, http.StatusOK, user, "Signed in")
}

// GoogleSignin exchanges a verified Google ID token for a platform session.
func (h *AuthHandler) GoogleSignin(w http.ResponseWriter, r *http.Request) {
	if h.googleConfig == nil {
		http.Error(w, "Google sign-in is not configured", http.StatusNotImplemented)
		return
	}

	var req types.GoogleSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}

	payload, err := h.verifyGoogleToken(r, req.Token, h.googleConfig.ClientID)
	if err != nil {
		http.Error(w, "Invalid Google token", http.StatusUnauthorized)
		return
	}

	input := googleUserInput(payload)
	if input.Email == "" {
		http.Error(w, "Google token is missing an email claim", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.LoginWithGoogle(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	h.writeSession(w, http.StatusOK, user, "Signed in with Google")
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, user *db.User, message string) {
	token, err := h.jwtService.GenerateToken(user.ID, user.EmployerFlag)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	response := types.SigninResponse{
		Token:      token,
		Message:    message,
		IsEmployer: user.EmployerFlag,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Log error but response already sent
		return
	}
}

// googleUserInput pulls the profile claims we persist from a verified token.
func googleUserInput(payload *idtoken.Payload) *db.GoogleUserInput {
	claim := func(name string) string {
		if v, ok := payload.Claims[name].(string); ok {
			return v
		}
		return ""
	}
	return &db.GoogleUserInput{
		FullName:   claim("name"),
		FirstName:  claim("given_name"),
		LastName:   claim("family_name"),
		Email:      claim("email"),
		PictureURL: claim("picture"),
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
