package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// AdminHandler groups the moderation endpoints: verification, item
// removal, user management, role assignment and the analytics
// dashboard.  Every method re-resolves the caller's role from the
// database instead of trusting the JWT claim, so a demoted admin loses
// access as soon as the role row changes.
type AdminHandler struct {
	Items    *workflow.ItemWorkflow
	Roles    *repository.RoleRepo
	Profiles *repository.ProfileRepo
	Admin    *repository.AdminRepo
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(items *workflow.ItemWorkflow, roles *repository.RoleRepo, profiles *repository.ProfileRepo, admin *repository.AdminRepo) *AdminHandler {
	if items == nil || roles == nil || profiles == nil || admin == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Items: items, Roles: roles, Profiles: profiles, Admin: admin}
}

// requireAdmin resolves the caller's current role and writes the
// refusal itself when the caller is not an admin.  The second return
// is false once a response has been written; handlers then just
// return nil.
func (h *AdminHandler) requireAdmin(c echo.Context) (uint64, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return 0, false
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	role, err := h.Roles.Resolve(ctx, userID)
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve role failed"})
		return 0, false
	}
	if role != model.RoleAdmin {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		return 0, false
	}
	return userID, true
}

// Analytics handles GET /v1/admin/analytics.
func (h *AdminHandler) Analytics(c echo.Context) error {
	if _, ok := h.requireAdmin(c); !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	a, err := h.Admin.LoadAnalytics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "analytics failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if _, ok := h.requireAdmin(c); !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Profiles.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// SetVerified handles PATCH /v1/admin/items/:id/verify with body
// {"verified": true|false}.
func (h *AdminHandler) SetVerified(c echo.Context) error {
	if _, ok := h.requireAdmin(c); !ok {
		return nil
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Verified bool `json:"verified"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	item, err := h.Items.SetVerified(ctx, id, model.RoleAdmin, body.Verified)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /v1/admin/items/:id.  Admins may remove
// any listing; the workflow's owner-or-admin rule passes because the
// role is already confirmed.
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	callerID, ok := h.requireAdmin(c)
	if !ok {
		return nil
	}
	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Items.Delete(ctx, id, callerID, model.RoleAdmin); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /v1/admin/users/:id.  The entire cascade
// (claims, items, roles, tokens, profile, account) runs in one
// transaction; admins cannot delete themselves through this endpoint.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	callerID, ok := h.requireAdmin(c)
	if !ok {
		return nil
	}
	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if id == callerID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Admin.DeleteUserCascade(ctx, id); err != nil {
		if err == workflow.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignRole handles POST /v1/admin/users/:id/role with body
// {"role": "admin"|"user"}.  Assigning "user" removes the explicit
// record since user is the default.
func (h *AdminHandler) AssignRole(c echo.Context) error {
	if _, ok := h.requireAdmin(c); !ok {
		return nil
	}
	id, perr := parseID(c, "id")
	if perr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	role := model.Role(body.Role)
	if role != model.RoleAdmin && role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if role == model.RoleUser {
		if err := h.Roles.Remove(ctx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove role failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": id, "role": role})
	}
	if err := h.Roles.Assign(ctx, id, role); err != nil {
		if err == repository.ErrDuplicateRole {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already has a role record"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign role failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": id, "role": role})
}
