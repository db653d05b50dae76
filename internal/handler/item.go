package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/imaging"
	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/queue"
	"github.com/iliyamo/lost-and-found/internal/repository"
	queue_publisher "github.com/iliyamo/lost-and-found/internal/service"
	"github.com/iliyamo/lost-and-found/internal/storage"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// maxUploadBytes caps the accepted image upload size (8 MiB).
const maxUploadBytes = 8 << 20

// ItemHandler exposes the item lifecycle over HTTP: create, edit,
// delete, status transitions and image attachment.
type ItemHandler struct {
	Items    *workflow.ItemWorkflow
	ItemRepo *repository.ItemRepo
	Roles    *repository.RoleRepo
	Storage  *storage.Client // nil when no bucket is configured
}

// NewItemHandler constructs an ItemHandler and panics on nil
// dependencies; Storage alone may be nil.
func NewItemHandler(items *workflow.ItemWorkflow, itemRepo *repository.ItemRepo, roles *repository.RoleRepo, st *storage.Client) *ItemHandler {
	if items == nil || itemRepo == nil || roles == nil {
		panic("nil dependency passed to NewItemHandler")
	}
	return &ItemHandler{Items: items, ItemRepo: itemRepo, Roles: roles, Storage: st}
}

// itemReq is the JSON body for creating or updating an item.  The
// date is a plain YYYY-MM-DD string; Status is consulted on create
// only.
type itemReq struct {
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	Description   *string `json:"description"`
	Location      string  `json:"location"`
	DateLostFound string  `json:"date_lost_found"`
	Status        string  `json:"status"`
	ImageURL      *string `json:"image_url"`
	ContactEmail  *string `json:"contact_email"`
	ContactPhone  *string `json:"contact_phone"`
}

// toInput converts the request body into a workflow input.  A date
// that fails to parse stays zero and is reported by the shared
// validator alongside any other field violations.
func (r itemReq) toInput() workflow.ItemInput {
	var date time.Time
	if r.DateLostFound != "" {
		if t, err := time.Parse("2006-01-02", r.DateLostFound); err == nil {
			date = t
		}
	}
	return workflow.ItemInput{
		Title:         r.Title,
		Category:      model.ItemCategory(r.Category),
		Description:   r.Description,
		Location:      r.Location,
		DateLostFound: date,
		Status:        model.ItemStatus(r.Status),
		ImageURL:      r.ImageURL,
		ContactEmail:  r.ContactEmail,
		ContactPhone:  r.ContactPhone,
	}
}

// callerRole resolves the caller's current role from the database.
// The JWT role claim only gates routes; mutations consult the role
// table so revocations apply without waiting for token expiry.
func (h *ItemHandler) callerRole(c echo.Context, userID uint64) (model.Role, error) {
	ctx, cancel := reqContext(c)
	defer cancel()
	return h.Roles.Resolve(ctx, userID)
}

// Create handles POST /v1/items.
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Items.Create(ctx, userID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	// Fire-and-forget audit event; a dead broker never fails the request.
	go func(it model.Item) {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		ev := queue.ItemReportedEvent{
			ItemID:     it.ID,
			UserID:     it.UserID,
			Title:      it.Title,
			Category:   string(it.Category),
			Status:     string(it.Status),
			Location:   it.Location,
			ReportedAt: it.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := queue_publisher.PublishItemReported(pctx, ev); err != nil {
			log.Printf("item.reported publish skipped: %v", err)
		}
	}(*item)

	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT/PATCH /v1/items/:id.
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	role, err := h.callerRole(c, userID)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Items.Update(ctx, id, userID, role, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Transition handles POST /v1/items/:id/status with body {"status": ...}.
func (h *ItemHandler) Transition(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Items.TransitionStatus(ctx, id, userID, model.ItemStatus(body.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/items/:id.
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	role, err := h.callerRole(c, userID)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Items.Delete(ctx, id, userID, role); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine handles GET /v1/my-items.
func (h *ItemHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.ItemRepo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// UploadImage handles POST /v1/items/:id/image.  The multipart "image"
// part is sniffed, downscaled and re-encoded before going to object
// storage; only then is the public URL written onto the item.  Edit
// permission is enforced by running the update through the workflow's
// ownership check first.
func (h *ItemHandler) UploadImage(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Storage == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "object storage not configured"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	role, err := h.callerRole(c, userID)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// Permission check up front: only the owner or an admin may attach
	// an image, same rule as any other edit.
	item, err := h.Items.SetImagePermitted(ctx, id, userID, role)
	if err != nil {
		return writeError(c, err)
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

	key, err := h.Storage.Upload(ctx, storage.ItemImageKey(), processed.Data, processed.MIME)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	url := h.Storage.PublicURL(key)
	if err := h.ItemRepo.UpdateImageURL(ctx, item.ID, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save image url failed"})
	}
	item.ImageURL = &url
	return c.JSON(http.StatusOK, item)
}
