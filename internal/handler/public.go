package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// PublicHandler serves the unauthenticated browse and detail views.
// These routes sit behind the Redis response cache.
type PublicHandler struct {
	ItemRepo    *repository.ItemRepo
	ProfileRepo *repository.ProfileRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(items *repository.ItemRepo, profiles *repository.ProfileRepo) *PublicHandler {
	return &PublicHandler{ItemRepo: items, ProfileRepo: profiles}
}

// ListItems handles GET /v1/items?status=&category=&q=.
// Unknown status or category values are rejected rather than silently
// returning everything.
func (h *PublicHandler) ListItems(c echo.Context) error {
	f := repository.ListFilter{
		Status:   model.ItemStatus(c.QueryParam("status")),
		Category: model.ItemCategory(c.QueryParam("category")),
		Query:    c.QueryParam("q"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	if f.Category != "" && !f.Category.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category filter"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.ItemRepo.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// itemDetail is an item joined with the reporter's public profile.
type itemDetail struct {
	model.Item
	Reporter *model.Profile `json:"reporter,omitempty"`
}

// GetItem handles GET /v1/items/:id.  The reporter's profile rides
// along so the detail page can show who filed the listing; a missing
// profile degrades to the bare item rather than a 404.
func (h *PublicHandler) GetItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.ItemRepo.Find(ctx, id)
	if err != nil {
		if err == workflow.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	detail := itemDetail{Item: *item}
	if p, perr := h.ProfileRepo.Get(ctx, item.UserID); perr == nil {
		detail.Reporter = p
	}
	return c.JSON(http.StatusOK, detail)
}

// Categories handles GET /v1/categories: the fixed category list for
// filter dropdowns.
func (h *PublicHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": model.Categories})
}
