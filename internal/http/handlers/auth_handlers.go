package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/ges-stock/internal/account"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"go.uber.org/zap"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account data"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "User exists"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := accountService.Register(r.Context(), account.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		CompanyName:     req.CompanyName,
	})
	switch {
	case errors.Is(err, account.ErrEmailTaken):
		http.Error(w, "email already registered", http.StatusConflict)
		return
	case errors.Is(err, account.ErrMissingFields),
		errors.Is(err, account.ErrPasswordMismatch),
		errors.Is(err, account.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		writeError(w, r, err, "register user")
		return
	}

	token, _, err := tokenIssuer.GenerateToken(user)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := accountService.Authenticate(r.Context(), credentials.Email, credentials.Password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		writeError(w, r, err, "authenticate")
		return
	}

	token, claims, err := tokenIssuer.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, LoginResult{Token: token, ExpiresAt: claims.ExpiresAtTime()})
}

// LogoutHandler godoc
// @Summary Revoke the current token
// @Tags auth
// @Success 204 "Logged out"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Internal error"
// @Router /logout [post]
// @Security BearerAuth
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := accountService.Logout(r.Context(), claims.OwnerID(), claims.ID, claims.ExpiresAtTime()); err != nil {
		writeError(w, r, err, "log out")
		return
	}
	log.Info("user logged out", zap.String("owner_id", claims.OwnerID()))
	w.WriteHeader(http.StatusNoContent)
}

// GetProfileHandler godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /profile [get]
// @Security BearerAuth
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := accountService.Profile(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		writeError(w, r, err, "fetch profile")
		return
	}
	respond(w, http.StatusOK, toProfileResponse(user))
}

// UpdateProfileHandler godoc
// @Summary Update name and company of the current user
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /profile [put]
// @Security BearerAuth
func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := accountService.UpdateProfile(r.Context(), auth.OwnerID(r.Context()), account.ProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		writeError(w, r, err, "update profile")
		return
	}
	respond(w, http.StatusOK, toProfileResponse(user))
}

// ChangePasswordHandler godoc
// @Summary Change the current user's password
// @Tags profile
// @Accept json
// @Param passwords body PasswordChangeRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Current password is wrong"
// @Router /profile/password [put]
// @Security BearerAuth
func ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req PasswordChangeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	err := accountService.ChangePassword(r.Context(), auth.OwnerID(r.Context()), account.PasswordChange{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
		Confirm: req.ConfirmPassword,
	})
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		http.Error(w, "current password is wrong", http.StatusUnauthorized)
	case errors.Is(err, account.ErrMissingFields),
		errors.Is(err, account.ErrPasswordMismatch),
		errors.Is(err, account.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		writeError(w, r, err, "change password")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
