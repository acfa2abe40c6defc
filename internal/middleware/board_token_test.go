package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"futuboard/internal/auth"
	"futuboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupRouter(issuer *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	r.GET("/boards/:boardId/columns", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "read ok"})
	})

	r.PUT("/boards/:boardId/title", middleware.BoardTokenMiddleware(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "write ok"})
	})

	return r
}

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret-key", time.Hour, true)
}

func TestBoardTokenMiddleware_ValidToken(t *testing.T) {
	issuer := testIssuer()
	router := setupRouter(issuer)
	boardID := uuid.New()

	token, err := issuer.GenerateToken(boardID)
	assert.NoError(t, err)

	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String()+"/title", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "write ok")
}

func TestBoardTokenMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter(testIssuer())

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.New().String()+"/title", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access token missing")
}

func TestBoardTokenMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter(testIssuer())

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.New().String()+"/title", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access token invalid")
}

func TestBoardTokenMiddleware_InvalidToken(t *testing.T) {
	router := setupRouter(testIssuer())

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.New().String()+"/title", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access token invalid")
}

func TestBoardTokenMiddleware_ForeignBoardToken(t *testing.T) {
	issuer := testIssuer()
	router := setupRouter(issuer)

	// Token for one board presented against another
	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.New().String()+"/title", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "does not grant access")
}

func TestBoardTokenMiddleware_ReadStaysPublic(t *testing.T) {
	router := setupRouter(testIssuer())

	req, _ := http.NewRequest("GET", "/boards/"+uuid.New().String()+"/columns", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "read ok")
}

func TestBoardTokenMiddleware_CheckingDisabled(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret-key", time.Hour, false)
	router := setupRouter(issuer)

	req, _ := http.NewRequest("PUT", "/boards/"+uuid.New().String()+"/title", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}
