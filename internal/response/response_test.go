package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, r *gin.Engine, header string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(HeaderRequestID, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, Message{Message: "ok"}) })

	w, body := serve(t, r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Metadata.RequestID)
	assert.NotEmpty(t, body.Metadata.Timestamp)
	assert.Equal(t, body.Metadata.RequestID, w.Header().Get(HeaderRequestID))
	assert.Equal(t, map[string]interface{}{"message": "ok"}, body.Data)
}

func TestFailEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"firstName": "required"})
	})

	w, body := serve(t, r, "req-123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, GetMessage(ErrValidation), body.Error.Message)
	assert.Equal(t, "required", body.Error.Fields["firstName"])
	assert.Nil(t, body.Data)
	assert.Equal(t, "req-123", body.Metadata.RequestID)
}

func TestAbortFailStopsChain(t *testing.T) {
	r := gin.New()
	reached := false
	r.GET("/", func(c *gin.Context) { AbortFail(c, http.StatusUnauthorized, ErrTokenRequired) }, func(c *gin.Context) {
		reached = true
	})

	w, body := serve(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	assert.Equal(t, ErrTokenRequired, body.Error.Code)
	assert.NotEmpty(t, body.Metadata.RequestID, "fallback id without middleware")
}

func TestRequestIDMiddleware_RejectsOversizedHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { Success(c, http.StatusOK, nil) })

	_, body := serve(t, r, strings.Repeat("x", maxRequestIDLength+1))
	assert.Len(t, body.Metadata.RequestID, 36)
}

func TestGetMessage_Distinct(t *testing.T) {
	assert.NotEqual(t, GetMessage(ErrInvalidCredentials), GetMessage(ErrCurrentPasswordIncorrect))
	assert.Equal(t, "Internal server error", GetMessage(ErrCode("SOMETHING_ELSE")))
	assert.Equal(t, "Internal server error", GetMessage(ErrInternal))
}
