package auth

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/domain"
	"github.com/tu-usuario/caja-pos/internal/domain/entity"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
	"github.com/tu-usuario/caja-pos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// RegisterUser crea un usuario: valida todos los campos (reportando cada
// violación, no solo la primera), verifica unicidad de username y email,
// hashea la contraseña con bcrypt y persiste. El primer usuario registrado
// queda admin automáticamente; los demás son staff salvo rol explícito.
// No devuelve token: el flujo manda al usuario a la pantalla de login.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	fields := map[string]string{}
	if in.Username == "" {
		fields["username"] = "el nombre de usuario es obligatorio"
	} else if len(in.Username) < 3 {
		fields["username"] = "mínimo 3 caracteres"
	}
	if in.Email == "" {
		fields["email"] = "el email es obligatorio"
	} else if !emailPattern.MatchString(in.Email) {
		fields["email"] = "email inválido"
	}
	if in.Password == "" {
		fields["password"] = "la contraseña es obligatoria"
	} else if len(in.Password) < 6 {
		fields["password"] = "mínimo 6 caracteres"
	}
	if in.Name == "" {
		fields["name"] = "el nombre es obligatorio"
	}
	if in.Role != "" && in.Role != entity.RoleAdmin && in.Role != entity.RoleStaff {
		fields["role"] = "rol desconocido"
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	if existing, _ := uc.userRepo.GetByUsername(in.Username); existing != nil {
		return nil, domain.NewValidationError(map[string]string{"username": "ese nombre de usuario ya está en uso"})
	}
	if existing, _ := uc.userRepo.GetByEmail(in.Email); existing != nil {
		return nil, domain.NewValidationError(map[string]string{"email": "ese email ya está registrado"})
	}

	// El primer usuario del sistema es admin
	count, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	role := in.Role
	if count == 0 {
		role = entity.RoleAdmin
	} else if role == "" {
		role = entity.RoleStaff
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica las credenciales (acepta username o email), actualiza
// lastLogin, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByLogin(in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized // no revelar si el usuario existe
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
