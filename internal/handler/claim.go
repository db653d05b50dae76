package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/queue"
	"github.com/iliyamo/lost-and-found/internal/repository"
	queue_publisher "github.com/iliyamo/lost-and-found/internal/service"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// ClaimHandler exposes claim submission and moderation over HTTP.
type ClaimHandler struct {
	Claims    *workflow.ClaimWorkflow
	ClaimRepo *repository.ClaimRepo
	ItemRepo  *repository.ItemRepo
}

// NewClaimHandler constructs a ClaimHandler.
func NewClaimHandler(claims *workflow.ClaimWorkflow, claimRepo *repository.ClaimRepo, itemRepo *repository.ItemRepo) *ClaimHandler {
	if claims == nil || claimRepo == nil || itemRepo == nil {
		panic("nil dependency passed to NewClaimHandler")
	}
	return &ClaimHandler{Claims: claims, ClaimRepo: claimRepo, ItemRepo: itemRepo}
}

// Submit handles POST /v1/items/:id/claims with body {"message": ...}.
func (h *ClaimHandler) Submit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	claim, err := h.Claims.Submit(ctx, itemID, userID, body.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, claim)
}

// Resolve handles POST /v1/claims/:id/resolve with body
// {"decision": "approved"|"rejected"}.  Only the owner of the claimed
// item gets past the workflow; the decision is recorded on the audit
// stream once the write has succeeded.
func (h *ClaimHandler) Resolve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	claimID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Decision string `json:"decision"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	claim, err := h.Claims.Resolve(ctx, claimID, userID, model.ClaimStatus(body.Decision))
	if err != nil {
		return writeError(c, err)
	}

	go func(cl model.Claim, ownerID uint64) {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		ev := queue.ClaimResolvedEvent{
			ClaimID:    cl.ID,
			ItemID:     cl.ItemID,
			OwnerID:    ownerID,
			ClaimerID:  cl.ClaimerID,
			Decision:   string(cl.Status),
			ResolvedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if item, ierr := h.ItemRepo.Find(pctx, cl.ItemID); ierr == nil {
			ev.ItemTitle = item.Title
		}
		if err := queue_publisher.PublishClaimResolved(pctx, ev); err != nil {
			log.Printf("claim.resolved publish skipped: %v", err)
		}
	}(*claim, userID)

	return c.JSON(http.StatusOK, claim)
}

// ListForOwner handles GET /v1/claims: the moderation inbox of claims
// filed against the caller's items.
func (h *ClaimHandler) ListForOwner(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	details, err := h.Claims.ListForOwner(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": details, "count": len(details)})
}

// ListMine handles GET /v1/my-claims: the claims the caller submitted
// against other people's items.
func (h *ClaimHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	claims, err := h.ClaimRepo.ListByClaimer(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": claims, "count": len(claims)})
}
