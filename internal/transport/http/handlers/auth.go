package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pribylovaa/go-task-tracker/internal/metrics"
	"github.com/pribylovaa/go-task-tracker/internal/models"
	"github.com/pribylovaa/go-task-tracker/internal/service"
	apierrors "github.com/pribylovaa/go-task-tracker/internal/transport/http/errors"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Device   string `json:"device,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Device   string `json:"device,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type revokeRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	UserID          string    `json:"user_id"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

func tokenPairFromModel(pair *models.TokenPair, userID string) tokenPairResponse {
	return tokenPairResponse{
		UserID:          userID,
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt,
	}
}

// deviceOf — метка устройства: явное поле запроса либо User-Agent.
func deviceOf(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}

	return r.UserAgent()
}

func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, userID, err := h.svc.RegisterUser(r.Context(), in.Email, in.Password, in.Name, deviceOf(r, in.Device))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenPairFromModel(pair, userID.String()))
}

func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, userID, err := h.svc.LoginUser(r.Context(), in.Email, in.Password, deviceOf(r, in.Device))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairFromModel(pair, userID.String()))
}

func (h *Handlers) RefreshTokens(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil || in.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	pair, userID, err := h.svc.RefreshTokens(r.Context(), in.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrReuseDetected) {
			metrics.RefreshReuseDetectedTotal.Inc()
		}
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairFromModel(pair, userID.String()))
}

func (h *Handlers) RevokeToken(w http.ResponseWriter, r *http.Request) {
	var in revokeRequest
	if err := decodeStrict(r, &in); err != nil || in.RefreshToken == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.svc.RevokeToken(r.Context(), in.RefreshToken); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
