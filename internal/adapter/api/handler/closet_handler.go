package handler

import (
	"encoding/base64"
	"strings"

	"github.com/labstack/echo/v4"

	"stylemate/internal/domain/service"
	"stylemate/internal/usecase"
	"stylemate/pkg/errors"
	"stylemate/pkg/logger"
	"stylemate/pkg/response"
)

type ClosetHandler struct {
	closetUseCase  *usecase.ClosetUseCase
	taggingService service.TaggingService
}

func NewClosetHandler(closetUseCase *usecase.ClosetUseCase, taggingService service.TaggingService) *ClosetHandler {
	return &ClosetHandler{
		closetUseCase:  closetUseCase,
		taggingService: taggingService,
	}
}

func (h *ClosetHandler) ListCloset(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.closetUseCase.ListCloset(uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *ClosetHandler) AddItem(c echo.Context) error {
	var req usecase.ItemInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	item, err := h.closetUseCase.AddItem(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ClosetHandler) UpdateItem(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	var req usecase.ItemInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	item, err := h.closetUseCase.UpdateItem(c.Request().Context(), uid, itemID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ClosetHandler) DeleteItem(c echo.Context) error {
	itemID := c.Param("itemId")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.closetUseCase.DeleteItem(c.Request().Context(), uid, itemID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item deleted",
	})
}

type tagSuggestionRequest struct {
	Image string `json:"image" validate:"required"`
}

// SuggestTags runs the vision collaborator over an uploaded photo. A
// collaborator failure is reported as an unavailability hint so the client
// falls back to manual entry.
func (h *ClosetHandler) SuggestTags(c echo.Context) error {
	var req tagSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	mimeType, payload, err := decodeDataURL(req.Image)
	if err != nil {
		return response.Error(c, errors.BadRequest("Image must be a base64 data URL", err))
	}

	uid := c.Get("uid").(string)

	suggestion, err := h.taggingService.SuggestTags(c.Request().Context(), payload, mimeType)
	if err != nil {
		logger.Warn("Tag suggestion failed for user %s: %v", uid, err)
		return response.Success(c, map[string]interface{}{
			"available": false,
		})
	}

	return response.Success(c, map[string]interface{}{
		"available":  true,
		"suggestion": suggestion,
	})
}

func decodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, errors.BadRequest("Invalid data URL", nil)
	}

	comma := strings.Index(dataURL, ",")
	if comma < 0 {
		return "", nil, errors.BadRequest("Invalid data URL", nil)
	}

	meta := strings.TrimSuffix(dataURL[len("data:"):comma], ";base64")

	payload, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", nil, err
	}

	return meta, payload, nil
}
