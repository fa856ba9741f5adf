package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 5, resp.Meta.TotalPages)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "not found domain error",
			err:          shared.NewDomainError("DRAFT_NOT_FOUND", "Return draft not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: "ERR_NOT_FOUND",
		},
		{
			name:         "forbidden domain error",
			err:          shared.NewDomainError("TENANT_SUSPENDED", "Tenant is suspended"),
			expectedCode: http.StatusForbidden,
			expectedBody: "ERR_FORBIDDEN",
		},
		{
			name:         "invalid state domain error",
			err:          shared.NewDomainError("INVALID_STATE", "Draft already reviewed"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "ERR_INVALID_STATE",
		},
		{
			name:         "validation domain error",
			err:          shared.NewDomainError("INVALID_REASON", "Rejection requires a reason"),
			expectedCode: http.StatusBadRequest,
			expectedBody: "ERR_VALIDATION",
		},
		{
			name:         "conflict domain error",
			err:          shared.NewDomainError("SLUG_TAKEN", "Slug already in use"),
			expectedCode: http.StatusConflict,
			expectedBody: "ERR_CONFLICT",
		},
		{
			name:         "unclassified domain error",
			err:          shared.NewDomainError("SOMETHING_ODD", "odd"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "SOMETHING_ODD",
		},
		{
			name:         "non-domain error does not leak its message",
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			if tt.name == "non-domain error does not leak its message" {
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}

func TestBaseHandlerHandleBindError(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Count int    `json:"count" binding:"required,min=1"`
	}

	h := &BaseHandler{}
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req payload
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindError(c, err)
			return
		}
		h.Success(c, req)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "count")
}

func TestBaseHandlerHandleBindErrorMalformedJSON(t *testing.T) {
	h := &BaseHandler{}
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindError(c, err)
			return
		}
		h.Success(c, req)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_BAD_REQUEST")
}
