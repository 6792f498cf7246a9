package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles signup, login and token issuance. Signup creates the
// tenant (starting its trial) together with its first admin user.
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, *models.Tenant, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type SignupRequest struct {
	TenantName    string  `json:"tenant_name" validate:"required"`
	WorkspaceSlug string  `json:"workspace_url" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required"`
	Phone         *string `json:"phone"`
	Password      string  `json:"password" validate:"required"`
}

type authService struct {
	userRepo        repositories.UserRepository
	tenantService   TenantService
	jwtSecret       []byte
	superAdminEmail string
	now             func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, tenantService TenantService, jwtSecret string, superAdminEmail string) AuthService {
	return &authService{
		userRepo:        userRepo,
		tenantService:   tenantService,
		jwtSecret:       []byte(jwtSecret),
		superAdminEmail: superAdminEmail,
		now:             time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, *models.Tenant, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, nil, "", errors.New("name, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, nil, "", errors.New("password must be at least 8 characters")
	}

	tenant, err := s.tenantService.Create(ctx, &CreateTenantRequest{
		Name:          req.TenantName,
		WorkspaceSlug: req.WorkspaceSlug,
	})
	if err != nil {
		return nil, nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleAdmin
	if s.superAdminEmail != "" && email == strings.ToLower(s.superAdminEmail) {
		role = models.RoleSuperAdmin
	}

	user := &models.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, nil, "", err
	}
	return user, tenant, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":         user.ID.String(),
		"tenant_id":   user.TenantID.String(),
		"super_admin": user.Role == models.RoleSuperAdmin,
		"iat":         now.Unix(),
		"exp":         now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
