package auth_test

import (
	"net/http"
	"testing"
	"time"

	"futuboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret-key", time.Hour, true)
}

func TestGenerateAndParseToken(t *testing.T) {
	issuer := testIssuer()
	boardID := uuid.New()

	token, err := issuer.GenerateToken(boardID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedBoardID, err := issuer.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, boardID, parsedBoardID)
}

func TestParseToken_Invalid(t *testing.T) {
	issuer := testIssuer()

	_, err := issuer.ParseToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	issuer := testIssuer()

	claims := jwt.MapClaims{
		"board_id": uuid.New().String(),
		"exp":      time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte("test-secret-key"))

	_, err := issuer.ParseToken(expiredToken)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := testIssuer()

	claims := jwt.MapClaims{
		"board_id": uuid.New().String(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	forged, _ := token.SignedString([]byte("some-other-secret"))

	_, err := issuer.ParseToken(forged)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestParseToken_MissingBoardClaim(t *testing.T) {
	issuer := testIssuer()

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("test-secret-key"))

	_, err := issuer.ParseToken(signed)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestCheckRequest(t *testing.T) {
	issuer := testIssuer()
	boardID := uuid.New()

	token, err := issuer.GenerateToken(boardID)
	assert.NoError(t, err)

	req, _ := http.NewRequest("PUT", "/boards/"+boardID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.NoError(t, issuer.CheckRequest(req, boardID))
}

func TestCheckRequest_MissingHeader(t *testing.T) {
	issuer := testIssuer()

	req, _ := http.NewRequest("PUT", "/boards/x", nil)
	err := issuer.CheckRequest(req, uuid.New())
	assert.ErrorIs(t, err, auth.ErrTokenMissing)
}

func TestCheckRequest_BoardMismatch(t *testing.T) {
	issuer := testIssuer()

	// A validly signed, unexpired token for board A must not open board B.
	token, err := issuer.GenerateToken(uuid.New())
	assert.NoError(t, err)

	req, _ := http.NewRequest("PUT", "/boards/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	err = issuer.CheckRequest(req, uuid.New())
	assert.ErrorIs(t, err, auth.ErrBoardMismatch)
}

func TestCheckRequest_Disabled(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret-key", time.Hour, false)

	req, _ := http.NewRequest("PUT", "/boards/x", nil)
	assert.NoError(t, issuer.CheckRequest(req, uuid.New()))
}
