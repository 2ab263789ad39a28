package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_WriteStatusAndCode(t *testing.T) {
	tests := []struct {
		name   string
		send   func(c *gin.Context)
		status int
		code   string
	}{
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "nope") }, http.StatusForbidden, ErrCodeForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "") }, http.StatusNotFound, ErrCodeNotFound},
		{"job inactive", func(c *gin.Context) { UnprocessableEntity(c, ErrCodeJobInactive, "closed") }, http.StatusUnprocessableEntity, ErrCodeJobInactive},
		{"duplicate", func(c *gin.Context) { ConflictWithCode(c, ErrCodeDuplicateApplication, "dup") }, http.StatusConflict, ErrCodeDuplicateApplication},
		{"rate limited", func(c *gin.Context) { TooManyRequests(c, "") }, http.StatusTooManyRequests, ErrCodeTooManyRequests},
		{"internal", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.send(c)

			require.Equal(t, tt.status, w.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Equal(t, tt.code, body.Code)
			require.NotEmpty(t, body.Message)
		})
	}
}

func TestInvalidRequestBody_ListsFieldErrors(t *testing.T) {
	type request struct {
		JobID uint64 `validate:"required"`
		Email string `validate:"email"`
	}
	err := validator.New().Struct(request{Email: "not-an-email"})
	require.Error(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	InvalidRequestBody(c, err)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.ElementsMatch(t, []FieldError{
		{Field: "JobID", Code: ErrCodeMissingField, Rule: "required"},
		{Field: "Email", Code: ErrCodeInvalidFormat, Rule: "email"},
	}, body.Details)
}

func TestInvalidRequestBody_MalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var target map[string]interface{}
	InvalidRequestBody(c, json.Unmarshal([]byte("{"), &target))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.Nil(t, body.Details)
}
