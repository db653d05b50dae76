package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/workflow"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &workflow.ValidationError{Fields: map[string]string{"title": "bad"}}, http.StatusBadRequest},
		{"not found", workflow.ErrNotFound, http.StatusNotFound},
		{"permission denied", workflow.ErrPermissionDenied, http.StatusForbidden},
		{"invalid transition", workflow.ErrInvalidTransition, http.StatusConflict},
		{"self claim", workflow.ErrSelfClaim, http.StatusConflict},
		{"not claimable", workflow.ErrItemNotClaimable, http.StatusConflict},
		{"persistence", &workflow.PersistenceError{Err: errors.New("db down")}, http.StatusInternalServerError},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext()
			require.NoError(t, writeError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
		})
	}

	// Validation responses carry the field map so clients can highlight
	// the offending inputs.
	c, rec := newTestContext()
	require.NoError(t, writeError(c, &workflow.ValidationError{Fields: map[string]string{"title": "too short"}}))
	assert.Contains(t, rec.Body.String(), `"title":"too short"`)

	// Internal errors never leak the underlying cause.
	c, rec = newTestContext()
	require.NoError(t, writeError(c, &workflow.PersistenceError{Err: errors.New("dial tcp 10.0.0.5: refused")}))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name string
		set  interface{}
		want uint64
		ok   bool
	}{
		{"float64 from JWT claims", float64(42), 42, true},
		{"uint64", uint64(7), 7, true},
		{"int", int(3), 3, true},
		{"numeric string", "19", 19, true},
		{"garbage string", "abc", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext()
			if tc.set != nil {
				c.Set("user_id", tc.set)
			}
			id, err := getUserID(c)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, id)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
