package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/imaging"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/storage"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// ProfileHandler lets users read and edit their own profile.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
	Storage  *storage.Client // nil when no bucket is configured
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(profiles *repository.ProfileRepo, st *storage.Client) *ProfileHandler {
	if profiles == nil {
		panic("nil ProfileRepo passed to NewProfileHandler")
	}
	return &ProfileHandler{Profiles: profiles, Storage: st}
}

// Get handles GET /v1/profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Profiles.Get(ctx, userID)
	if err != nil {
		if err == workflow.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /v1/profile with body {"full_name": ..., "phone": ...}.
// Email is account identity and never editable here.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		FullName *string `json:"full_name"`
		Phone    *string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Phone != nil && len(*body.Phone) > 20 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone too long"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Profiles.Update(ctx, userID, body.FullName, body.Phone)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// UploadAvatar handles POST /v1/profile/avatar with a multipart
// "image" part, mirroring the item image pipeline.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Storage == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "object storage not configured"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer f.Close()

	processed, err := imaging.Process(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	key, err := h.Storage.Upload(ctx, storage.AvatarKey(), processed.Data, processed.MIME)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	url := h.Storage.PublicURL(key)
	if err := h.Profiles.UpdateAvatar(ctx, userID, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save avatar failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"avatar_url": url})
}
