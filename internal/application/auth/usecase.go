package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bloodconnect-api/internal/application/dto"
	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
	"github.com/jhoicas/bloodconnect-api/internal/domain/repository"
	"github.com/jhoicas/bloodconnect-api/pkg/jwt"
)

// Mensajes expuestos al cliente.
const (
	msgMissingRegisterFields = "Please provide email, password, and role"
	msgInvalidRole           = "Invalid role specified"
	msgEmailTaken            = "User already exists with this email"
	msgMissingLoginFields    = "Please provide an email and password"
	msgInvalidCredentials    = "Invalid credentials"
	msgAccountDeactivated    = "Account is deactivated. Please contact admin."
	msgUserNotFound          = "User not found"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ProfileHandler operaciones del perfil de un rol. Register y /me despachan por rol
// sobre una tabla rol → ProfileHandler.
type ProfileHandler interface {
	// CreateProfile decodifica y valida el perfil desde body y lo persiste con los repos de la tx.
	CreateProfile(ctx context.Context, s ports.Stores, user *entity.User, body []byte) error
	// ProfileOf devuelve el perfil del usuario, o nil si no tiene.
	ProfileOf(ctx context.Context, userID string) (any, error)
	UpdateProfileJSON(ctx context.Context, userID string, body []byte) (any, error)
}

// registrableRoles roles que pueden auto-registrarse (admin no).
var registrableRoles = map[string]bool{
	entity.RolePatient:  true,
	entity.RoleDonor:    true,
	entity.RoleHospital: true,
}

type credentials struct {
	Email    string `json:"email" validate:"email,max=254"`
	Password string `json:"password" validate:"min=6,max=72"`
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil propio y bootstrap del admin.
type AuthUseCase struct {
	tx       ports.TxRunner
	userRepo repository.UserRepository
	profiles map[string]ProfileHandler
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx ports.TxRunner,
	userRepo repository.UserRepository,
	profiles map[string]ProfileHandler,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{tx: tx, userRepo: userRepo, profiles: profiles, jwtCfg: jwtCfg, log: log}
}

// Register crea el usuario y su perfil de rol en una sola transacción: o existen ambos o ninguno.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	role := strings.TrimSpace(in.Role)
	if email == "" || in.Password == "" || role == "" {
		return nil, domain.Validation(msgMissingRegisterFields)
	}
	profiles, ok := uc.profiles[role]
	if !ok || !registrableRoles[role] {
		return nil, domain.Validation(msgInvalidRole)
	}
	if err := dto.Validate(credentials{Email: email, Password: in.Password}); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict(msgEmailTaken)
	}

	user, err := newUser(email, in.Password, role)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(s ports.Stores) error {
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}
		return profiles.CreateProfile(ctx, s, user, in.Body)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) && !isDomainMessage(err) {
			return nil, domain.Conflict(msgEmailTaken)
		}
		uc.log.Debug().Err(err).Str("email", email).Str("role", role).Msg("registro revertido")
		return nil, err
	}

	return uc.issue(user)
}

// Login verifica email/password y emite el token. La cuenta desactivada se reporta
// solo después de verificar la contraseña.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Validation(msgMissingLoginFields)
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, domain.Unauthorized(msgAccountDeactivated)
	}
	return uc.issue(user)
}

// Me devuelve el usuario autenticado y su perfil de rol.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}
	out := &dto.MeResponse{User: dto.NewUserResponse(user)}
	if h, ok := uc.profiles[user.Role]; ok {
		profile, err := h.ProfileOf(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		out.Profile = profile
	}
	return out, nil
}

// UpdateProfile aplica el parche al perfil del rol del usuario.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, body []byte) (any, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}
	h, ok := uc.profiles[user.Role]
	if !ok {
		return nil, domain.Validation(msgInvalidRole)
	}
	return h.UpdateProfileJSON(ctx, user.ID, body)
}

// EnsureDefaultAdmin crea el administrador por defecto si no existe un usuario con ese email.
// Es idempotente: devuelve created=false cuando ya existe.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context, email, password string) (created bool, err error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, domain.Validation(msgMissingLoginFields)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	profiles, ok := uc.profiles[entity.RoleAdmin]
	if !ok {
		return false, fmt.Errorf("ensure default admin: no admin profile handler")
	}
	user, err := newUser(email, password, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	err = uc.tx.Run(ctx, func(s ports.Stores) error {
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}
		return profiles.CreateProfile(ctx, s, user, nil)
	})
	if errors.Is(err, domain.ErrConflict) {
		// Otro proceso lo creó entre la consulta y el insert.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	uc.log.Info().Str("email", email).Msg("administrador por defecto creado")
	return true, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return dto.NewAuthResponse(token, user), nil
}

func newUser(email, password, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// isDomainMessage indica si err ya trae un mensaje de dominio propio (no solo el sentinel).
func isDomainMessage(err error) bool {
	var de *domain.Error
	return errors.As(err, &de)
}
