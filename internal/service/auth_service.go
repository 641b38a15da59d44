package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/parmenasoares/track-and-work/internal/config"
	"github.com/parmenasoares/track-and-work/internal/dto"
	"github.com/parmenasoares/track-and-work/internal/model"
	"github.com/parmenasoares/track-and-work/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns sessions and the role-resolution contract: signup, login,
// refresh, and the boolean role checks clients gate navigation on.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	users repository.UserRepository
	roles repository.RoleRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, cfg *config.Config) AuthService {
	return &authService{users: users, roles: roles, cfg: cfg}
}

func mapUser(u *model.User, roles []string) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     roles,
	}
}

func (s *authService) roleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.roles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Role)
	}
	return names, nil
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	first := strings.TrimSpace(req.FirstName)
	user := &model.User{
		Email:        email,
		FirstName:    &first,
		PasswordHash: string(hash),
	}
	if last := strings.TrimSpace(req.LastName); last != "" {
		user.LastName = &last
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// New accounts hold no role until an admin grants one.
	return s.tokenPair(user, nil)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidLogin
	}

	roles, err := s.roleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.tokenPair(user, roles)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// Roles are re-read on refresh so a revoked role expires with the old
	// access token rather than living as long as the refresh chain.
	roles, err := s.roleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.tokenPair(user, roles)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	roles, err := s.roleNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{User: mapUser(user, roles)}
	for _, r := range roles {
		if r == model.RoleSuperAdmin {
			resp.IsSuperAdmin = true
		}
		if model.RoleAtLeast(r, model.RoleAdmin) {
			resp.IsAdminOrSuperAdmin = true
		}
		if model.RoleAtLeast(r, model.RoleCoordenador) {
			resp.IsCoordenadorOrAbove = true
		}
	}
	return resp, nil
}

func (s *authService) tokenPair(user *model.User, roles []string) (*dto.LoginResponse, error) {
	access, err := s.generateToken(user, roles, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, roles, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapUser(user, roles),
	}, nil
}

func (s *authService) generateToken(user *model.User, roles []string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"roles":   roles,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
