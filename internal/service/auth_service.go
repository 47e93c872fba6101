package service

import (
	"errors"
	"strings"
	"time"

	"github.com/fundbase/docportal/internal/auth"
	"github.com/fundbase/docportal/internal/models"
)

type AuthService struct {
	users      UserStore
	jwtSecret  string
	adminEmail string
}

func NewAuthService(users UserStore, jwtSecret, adminEmail string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, adminEmail: adminEmail}
}

type AuthResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// Register creates an account. The role is fixed here: the configured
// admin email becomes admin, everyone else is a startup.
func (s *AuthService) Register(email, password, name string) (*AuthResult, error) {
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	existing, _ := s.users.FindByEmail(email)
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := models.RoleStartup
	if s.adminEmail != "" && strings.EqualFold(email, s.adminEmail) {
		role = models.RoleAdmin
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Status:       models.StartupStatusPending,
		LastLogin:    now,
		CreatedAt:    now,
	}
	id, err := s.users.Create(user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	token, err := auth.GenerateToken(s.jwtSecret, id, email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, errors.New("invalid credentials")
	}

	user.LastLogin = time.Now().UTC().Format(time.RFC3339)
	if err := s.users.Update(user.ID, map[string]any{"lastLogin": user.LastLogin}); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.ToResponse()}, nil
}

func (s *AuthService) Me(userID string) (*models.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *AuthService) SeedAdmin(email, password string) error {
	existing, _ := s.users.FindByEmail(email)
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	_, err = s.users.Create(user)
	return err
}
