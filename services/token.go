package services

import (
	"fmt"
	"strings"
	"time"

	"hotelhub/constants"
	apperrors "hotelhub/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint           `json:"userid"`
	Role   constants.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    Clock
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Generate(info UserInfo) (string, error) {
	now := s.now()
	claims := &Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   fmt.Sprint(info.UserId),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies signature and expiry and returns the embedded user info.
func (s *TokenService) Parse(tokenString string) (UserInfo, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return UserInfo{}, apperrors.Unauthenticated("인증 토큰이 없습니다", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return UserInfo{}, apperrors.Unauthenticated("유효하지 않은 토큰입니다", err)
	}
	if claims.UserInfo.UserId == 0 {
		return UserInfo{}, apperrors.Unauthenticated("토큰에 사용자 정보가 없습니다", nil)
	}
	return claims.UserInfo, nil
}
