package services

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"parkeasy/errors"
)

// UserInfo is the claim payload embedded in issued tokens
type UserInfo struct {
	UserID uint `json:"userid"`
	Role   int  `json:"role"`
}

// GenerateToken issues a signed JWT carrying the user info claims
func GenerateToken(userInfo UserInfo, expiryMinutes int) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": userInfo.UserID,
			"role":   userInfo.Role,
		},
		"exp": time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// GetUserIDFromToken extracts the user ID and role from a token string
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Failed to parse token", err)
	}

	claimsMap, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Failed to read claims", nil)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Missing user info in token", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Missing user ID in token", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidToken, "Missing role in token", nil)
	}

	return uint(userID), int(role), nil
}

// CurrentUserID resolves the authenticated user from the request's bearer
// token.
func CurrentUserID(c *gin.Context) (uint, int, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, 0, errors.NewAppError(errors.ErrCodeMissingToken, "Missing Authorization header", nil)
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	return GetUserIDFromToken(tokenString)
}

// SetTokenCookies mirrors the access token into a cookie for browser
// clients.
func SetTokenCookies(c *gin.Context, accessToken string) {
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", false, true)
}

// DecodeClaims is a helper for tests: it decodes the payload segment
// without verifying the signature.
func DecodeClaims(tokenString string) (jwt.MapClaims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", nil)
	}
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Failed to decode token", err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Failed to parse token", err)
	}
	return claims, nil
}
