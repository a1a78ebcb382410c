// internal/services/auth_service.go
package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tokenmart/ledger-backend/internal/config"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

// AuthService mints the platform-owner token. Trader identity comes from
// the external wallet-auth collaborator; this service only covers the one
// locally-held credential.
type AuthService struct {
	cfg *config.Config
}

type OwnerLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

var ErrInvalidCredentials = errors.New("invalid credentials")

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// OwnerLogin exchanges the owner password for an owner-role JWT bound to the
// configured owner account.
func (s *AuthService) OwnerLogin(password string) (string, error) {
	if s.cfg.Ledger.OwnerPasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Ledger.OwnerPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(s.cfg.Ledger.OwnerAccount, string(models.RoleOwner), s.cfg.JWT.AccessTokenTTL)
}
