package service

import (
	"errors"
	"log"

	"github.com/shefospecial/victoriasystem/internal/model"
	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(username, password string) (string, *model.AdminResponse, error)
	Verify(token string) (*model.AdminResponse, error)
	SeedDefaultAdmin() error
}

type authService struct {
	adminRepo repository.AdminRepository
}

func NewAuthService(adminRepo repository.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

func (s *authService) Login(username, password string) (string, *model.AdminResponse, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !admin.IsActive || !admin.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return "", nil, err
	}

	resp := admin.ToResponse()
	return token, &resp, nil
}

func (s *authService) Verify(token string) (*model.AdminResponse, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByID(claims.AdminID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	if !admin.IsActive {
		return nil, errors.New("account is disabled")
	}

	resp := admin.ToResponse()
	return &resp, nil
}

// SeedDefaultAdmin creates the initial admin account on an empty database.
func (s *authService) SeedDefaultAdmin() error {
	count, err := s.adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &model.Admin{
		Username: "admin",
		FullName: "Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return err
	}
	log.Println("Seeded default admin account (username: admin), change the password immediately")
	return nil
}
