package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kindredhq/kindred/internal/consent"
	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/service"
	"github.com/kindredhq/kindred/internal/validation"
)

type AuthHandler struct {
	accountService *service.AccountService
}

func NewAuthHandler(accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

type registerRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Birthdate  string `json:"birthdate"`
	ParentCode string `json:"parent_code"`
}

type registerResponse struct {
	Message    string  `json:"message"`
	UserID     string  `json:"user_id"`
	Token      string  `json:"token"`
	ParentCode *string `json:"parent_code,omitempty"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	ParentCode string `json:"parent_code"`
}

type loginResponse struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    model.PublicProfile `json:"user"`
}

// Register handles POST /auth/register. Shape validation runs here, before
// any business logic; the first violated rule is returned alone.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = validation.ValidateUsername(req.Username)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err = validation.ValidateEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err = validation.ValidatePassword(req.Password)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err = validation.ValidateRole(req.Role)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	birthdate, err := validation.ParseBirthdate(req.Birthdate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, token, err := h.accountService.Register(r.Context(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Birthdate:  birthdate,
		ParentCode: req.ParentCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, consent.ErrMissingConsent):
			respondError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, consent.ErrInvalidConsent):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("registration failed", "error", err, "email", req.Email)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		Message:    "account created",
		UserID:     account.ID,
		Token:      token,
		ParentCode: account.LinkageCode(),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = validation.ValidateEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	account, token, err := h.accountService.Login(r.Context(), req.Email, req.Password, req.ParentCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, consent.ErrConsentRequired):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			slog.Error("login failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    account.Public(),
	})
}
