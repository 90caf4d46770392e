package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dkeye/Live/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const userIDKey = "user_id"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(raw string) (domain.UserID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	uid := domain.UserID(claims.UserID)
	if err := domain.ValidUserID(uid); err != nil {
		return "", ErrInvalidToken
	}
	return uid, nil
}

// Sign issues an HS256 token for uid. Used by tests and tooling.
func (v *Verifier) Sign(uid domain.UserID, claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: string(uid), RegisteredClaims: claims})
	return token.SignedString(v.secret)
}

func tokenFrom(c *gin.Context) string {
	if authz := c.GetHeader("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if t, err := c.Cookie("token"); err == nil && t != "" {
		return t
	}
	// Browsers cannot set headers on a websocket upgrade.
	return c.Query("token")
}

// Middleware attaches the verified user id to the request. A token is
// optional; a present but invalid one is rejected. An empty secret
// disables verification.
func Middleware(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	v := NewVerifier(secret)
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			c.Next()
			return
		}
		uid, err := v.Verify(raw)
		if err != nil {
			log.Warn().Str("module", "auth").Str("path", c.FullPath()).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "unauthorized", "message": "invalid token"}})
			return
		}
		c.Set(userIDKey, uid)
		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (domain.UserID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	uid, ok := v.(domain.UserID)
	return uid, ok && uid != ""
}
