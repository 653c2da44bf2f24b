// Package auth emite tokens para el administrador del taller.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/taller-inventario/internal/application/dto"
	"github.com/jhoicas/taller-inventario/internal/domain"
	"github.com/jhoicas/taller-inventario/pkg/jwt"
)

const (
	RoleAdmin        = "admin"
	adminDisplayName = "Administrador"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario y contraseña del administrador.
// Password puede venir en claro o ya como hash bcrypt ($2a$/$2b$/$2y$).
type Credentials struct {
	User     string
	Password string
}

// AuthUseCase login contra la credencial de administrador configurada.
type AuthUseCase struct {
	user   string
	hash   []byte
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso; si la contraseña viene en claro se hashea una vez aquí.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) (*AuthUseCase, error) {
	if creds.User == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: credencial de administrador vacía", domain.ErrInvalidInput)
	}
	hash := []byte(creds.Password)
	if _, err := bcrypt.Cost(hash); err != nil {
		hash, err = bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash de contraseña: %w", err)
		}
	}
	return &AuthUseCase{user: creds.User, hash: hash, jwtCfg: jwtCfg}, nil
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.User)), []byte(uc.user)) == 1
	passErr := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		Subject: uc.user,
		Role:    RoleAdmin,
		Name:    adminDisplayName,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{Name: adminDisplayName, Role: RoleAdmin},
	}, nil
}
