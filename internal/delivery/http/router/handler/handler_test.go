package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrefix(t *testing.T) {
	tests := map[string]string{
		"/static/": "/static/",
		"static":   "/static/",
		"/assets":  "/assets/",
		"":         "/",
		"/":        "/",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, normalizePrefix(in))
		})
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "favicon.ico", want: "favicon.ico", ok: true},
		{raw: "css/site.css", want: "css/site.css", ok: true},
		{raw: ""},
		{raw: "css/"},
		{raw: "../config.yaml"},
		{raw: "css/../../secret"},
		{raw: "./favicon.ico"},
		{raw: "css//site.css"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			key, ok := objectKey(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestPageFromQuery(t *testing.T) {
	cfg := &config.AdminConfig{DefaultPageSize: 50, MaxPageSize: 100}
	e := echo.New()

	newCtx := func(query string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/admin/users?"+query, nil)

		return e.NewContext(req, httptest.NewRecorder())
	}

	page, err := pageFromQuery(newCtx(""), cfg)
	require.NoError(t, err)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.Offset)

	page, err = pageFromQuery(newCtx("limit=1000&offset=20"), cfg)
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 20, page.Offset)

	_, err = pageFromQuery(newCtx("limit=0"), cfg)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = pageFromQuery(newCtx("offset=-1"), cfg)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestToUserResponse_HidesPasswordHash(t *testing.T) {
	businessID := uuid.New()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "owner@example.com",
		PasswordHash: "$2a$10$secret",
		BusinessID:   &businessID,
		Role:         entity.RoleOwner,
		IsActive:     true,
	}

	resp := toUserResponse(user)
	assert.Equal(t, "owner", resp.Role)
	assert.Equal(t, "Owner", resp.RoleLabel)
	assert.True(t, resp.HasUsablePassword)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "last_login")
}

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	id := uuid.New()
	c.SetParamValues(id.String())
	got, err := parseID(c)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	c.SetParamValues("42")
	_, err = parseID(c)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
