package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/shared/errors"
)

func TestErrorResponseWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		Name string `json:"name" binding:"required"`
	}

	tests := []struct {
		name     string
		err      func() error
		wantCode int
		wantType string
	}{
		{
			name:     "app error keeps status",
			err:      func() error { return fmt.Errorf("wrapped: %w", errors.NewConflictError("bad state")) },
			wantCode: http.StatusConflict,
			wantType: "conflict",
		},
		{
			name: "binding error is validation",
			err: func() error {
				c, _ := gin.CreateTestContext(httptest.NewRecorder())
				c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
				c.Request.Header.Set("Content-Type", "application/json")
				var b body
				return c.ShouldBindJSON(&b)
			},
			wantCode: http.StatusBadRequest,
			wantType: "validation_error",
		},
		{
			name: "malformed json is validation",
			err: func() error {
				var b body
				return json.Unmarshal([]byte(`{"name":`), &b)
			},
			wantCode: http.StatusBadRequest,
			wantType: "validation_error",
		},
		{
			name:     "unknown error is internal",
			err:      func() error { return assert.AnError },
			wantCode: http.StatusInternalServerError,
			wantType: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err())

			assert.Equal(t, tt.wantCode, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestNewListResponse(t *testing.T) {
	got := NewListResponse([]string{"a"}, 21, 2, 10)
	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, int64(21), got.Total)
	assert.Equal(t, []string{"a"}, got.Items)
}
