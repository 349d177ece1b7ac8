package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stemsi/student-records/internal/response"
	"github.com/stemsi/student-records/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-at-least-32-bytes"

func newJWTRouter(tokens *service.TokenService, reached *uuid.UUID) *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireJWT(tokens), func(c *gin.Context) {
		id, ok := GetAccountID(c)
		if ok {
			*reached = id
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireJWT(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	accountID := uuid.New()

	valid, err := tokens.Issue(accountID)
	require.NoError(t, err)
	expired, err := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(accountID)
	require.NoError(t, err)
	future, err := tokens.WithClock(func() time.Time { return time.Now().Add(time.Hour) }).Issue(accountID)
	require.NoError(t, err)
	foreign, err := service.NewTokenService("a-completely-different-secret-32-bytes", time.Hour).Issue(accountID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   response.ErrCode
	}{
		{"Valid", "Bearer " + valid, http.StatusOK, ""},
		{"LowercaseScheme", "bearer " + valid, http.StatusOK, ""},
		{"Missing", "", http.StatusUnauthorized, response.ErrTokenRequired},
		{"WrongScheme", "Basic " + valid, http.StatusUnauthorized, response.ErrTokenRequired},
		{"EmptyToken", "Bearer ", http.StatusUnauthorized, response.ErrTokenRequired},
		{"Expired", "Bearer " + expired, http.StatusUnauthorized, response.ErrTokenExpired},
		{"NotYetValid", "Bearer " + future, http.StatusUnauthorized, response.ErrTokenNotActive},
		{"WrongSecret", "Bearer " + foreign, http.StatusUnauthorized, response.ErrTokenInvalid},
		{"Garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, response.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached uuid.UUID
			r := newJWTRouter(tokens, &reached)

			header := http.Header{}
			if tt.header != "" {
				header.Set("Authorization", tt.header)
			}
			w := doRequest(r, http.MethodGet, "/protected", header)

			assert.Equal(t, tt.status, w.Code)
			if tt.code == "" {
				assert.Equal(t, accountID, reached)
				return
			}
			assert.Equal(t, uuid.Nil, reached, "handler must not run")
			assert.Equal(t, tt.code, decodeError(t, w.Body))
		})
	}
}

func TestGetAccountID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(nil)
	_, ok := GetAccountID(c)
	assert.False(t, ok)
	assert.Nil(t, GetClaims(c))
}
