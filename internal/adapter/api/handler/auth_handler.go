package handler

import (
	"log"

	"github.com/labstack/echo/v4"

	"stylemate/internal/infrastructure/firebase"
	"stylemate/internal/usecase"
	"stylemate/pkg/response"
)

type AuthHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	authUseCase  *usecase.AuthUseCase
}

func NewAuthHandler(firebaseAuth *firebase.FirebaseAuthClient, authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		firebaseAuth: firebaseAuth,
		authUseCase:  authUseCase,
	}
}

// StartSession opens a live session for the authenticated user. The profile
// is seeded from the Firebase user record on first login.
func (h *AuthHandler) StartSession(c echo.Context) error {
	uid := c.Get("uid").(string)

	identity := usecase.Identity{UID: uid}
	if record, err := h.firebaseAuth.GetUser(c.Request().Context(), uid); err != nil {
		log.Printf("Could not fetch Firebase user record for %s: %v", uid, err)
	} else {
		identity.Name = record.DisplayName
		identity.Email = record.Email
		identity.Avatar = record.PhotoURL
		identity.PhoneNumber = record.PhoneNumber
	}

	user, err := h.authUseCase.StartSession(c.Request().Context(), identity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, user)
}

// EndSession flushes any pending state write and tears the session down.
func (h *AuthHandler) EndSession(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.EndSession(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Session ended",
	})
}

type updateProfileRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=50"`
	Username    string `json:"username" validate:"omitempty,min=3,max=16"`
	Avatar      string `json:"avatar"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=16"`
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name:        req.Name,
		Username:    req.Username,
		Avatar:      req.Avatar,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
