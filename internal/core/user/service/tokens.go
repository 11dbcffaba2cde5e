package userapp

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"
	userEntity "inkwell/internal/core/user"
	userPort "inkwell/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
	issuer       = "inkwell"
)

type TokenConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c TokenConfig) withDefaults() TokenConfig {
	if c.AccessTTL <= 0 {
		c.AccessTTL = 24 * time.Hour
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	return c
}

// Claims are the JWT claims of both token types.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.StandardClaims
}

func (s *UserService) generateJWT(userID, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := &Claims{
		TokenType: tokenType,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.Must(uuid.NewV4()).String(),
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokens.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

func (s *UserService) issuePair(u *userEntity.User) (*userPort.LoginResponse, error) {
	access, expires, err := s.generateJWT(u.ID.String(), tokenAccess, s.tokens.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.generateJWT(u.ID.String(), tokenRefresh, s.tokens.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &userPort.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires.Unix(),
		User:         userPort.ToUserDTO(u),
	}, nil
}

// parse validates signature, expiry, type and revocation.
func (s *UserService) parse(ctx context.Context, raw, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.tokens.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "Token is invalid or expired", err)
	}
	if claims.TokenType != tokenType || claims.Subject == "" || claims.Id == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "Token is invalid or expired")
	}

	if s.Blacklist != nil {
		revoked, err := s.Blacklist.IsRevoked(ctx, claims.Id)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperr.New(apperr.KindUnauthorized, "Token has been revoked")
		}
	}
	return claims, nil
}

// VerifyAccessToken is used by the auth middleware.
func (s *UserService) VerifyAccessToken(ctx context.Context, raw string) (*userPort.TokenClaims, error) {
	claims, err := s.parse(ctx, raw, tokenAccess)
	if err != nil {
		return nil, err
	}
	return &userPort.TokenClaims{
		UserID:    claims.Subject,
		TokenID:   claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// RefreshToken trades a refresh token for a new access token.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*userPort.LoginResponse, error) {
	claims, err := s.parse(ctx, refreshToken, tokenRefresh)
	if err != nil {
		return nil, err
	}
	u, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindUnauthorized, "Token is invalid or expired")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "User account is disabled")
	}

	access, expires, err := s.generateJWT(claims.Subject, tokenAccess, s.tokens.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &userPort.LoginResponse{AccessToken: access, ExpiresAt: expires.Unix()}, nil
}

// Logout revokes the refresh token and, when given, the access token used for the call.
func (s *UserService) Logout(ctx context.Context, actorID, refreshToken string, access *userPort.TokenClaims) error {
	claims, err := s.parse(ctx, refreshToken, tokenRefresh)
	if err != nil {
		return err
	}
	if actorID != "" && claims.Subject != actorID {
		return apperr.ErrForbidden
	}

	if err := s.Blacklist.Revoke(ctx, claims.Id, time.Until(time.Unix(claims.ExpiresAt, 0))); err != nil {
		return err
	}
	if access != nil {
		if err := s.Blacklist.Revoke(ctx, access.TokenID, time.Until(access.ExpiresAt)); err != nil {
			return err
		}
	}
	config.Logger.Info("User logged out", zap.String("userID", claims.Subject))
	return nil
}
