package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMissing  = errors.New("access token missing")
	ErrTokenExpired  = errors.New("access token expired")
	ErrTokenInvalid  = errors.New("access token invalid")
	ErrBoardMismatch = errors.New("token issued for a different board")
)

// TokenIssuer signs and validates board-scoped bearer tokens. A token
// asserts "the holder has authenticated against this board" until expiry.
type TokenIssuer struct {
	secret  []byte
	expiry  time.Duration
	enabled bool
}

func NewTokenIssuer(secret string, expiry time.Duration, enabled bool) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(secret),
		expiry:  expiry,
		enabled: enabled,
	}
}

// Enabled reports whether token checking is enforced at all.
func (i *TokenIssuer) Enabled() bool {
	return i.enabled
}

func (i *TokenIssuer) GenerateToken(boardID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"board_id": boardID.String(),
		"exp":      time.Now().Add(i.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseToken validates the signature and expiry and returns the board the
// token was issued for.
func (i *TokenIssuer) ParseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["board_id"] == nil {
		return uuid.Nil, ErrTokenInvalid
	}

	raw, ok := claims["board_id"].(string)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}

	boardID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return boardID, nil
}

// CheckRequest extracts the bearer token from the request and verifies it
// was issued for the given board. Falls through with nil when token
// checking is disabled.
func (i *TokenIssuer) CheckRequest(r *http.Request, boardID uuid.UUID) error {
	if !i.enabled {
		return nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ErrTokenInvalid
	}

	tokenBoardID, err := i.ParseToken(parts[1])
	if err != nil {
		return err
	}

	if tokenBoardID != boardID {
		return ErrBoardMismatch
	}
	return nil
}
