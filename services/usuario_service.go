package services

import (
	"fmt"
	"strings"

	"evidencias_app_go/models"

	"gorm.io/gorm"
)

const (
	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 6
	UsuarioMaxLength  = 50
	NombreMaxLength   = 100
)

// UsuarioCreate carries the fields accepted when registering a user
type UsuarioCreate struct {
	Nombre     string `json:"nombre"`
	Usuario    string `json:"usuario"`
	Email      string `json:"email"`
	Contrasena string `json:"contrasena"`
	Rol        string `json:"rol"`
}

// UsuarioPatch carries a partial update; nil fields are left unchanged
type UsuarioPatch struct {
	Nombre     *string `json:"nombre"`
	Usuario    *string `json:"usuario"`
	Contrasena *string `json:"contrasena"`
	Rol        *string `json:"rol"`
}

// IsEmpty reports whether the patch carries no fields at all
func (p *UsuarioPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Usuario == nil && p.Contrasena == nil && p.Rol == nil
}

// LoginResult is returned on a successful credential check
type LoginResult struct {
	Usuario *models.Usuario `json:"usuario"`
	Token   string          `json:"token"`
}

// NormalizeRol capitalizes a role name ("tecnico" -> "Tecnico"). Returns the
// normalized role or an empty string when the role is unknown.
func NormalizeRol(rol string) string {
	if rol == "" {
		return ""
	}
	normalized := strings.ToUpper(rol[:1]) + strings.ToLower(rol[1:])
	if models.IsValidRol(normalized) {
		return normalized
	}
	return ""
}

// GetUsuarios returns all users ordered by name, passwords never included
func GetUsuarios(db *gorm.DB) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := db.Order("nombre").Find(&usuarios).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch usuarios: %w", err)
	}
	return usuarios, nil
}

// GetUsuarioByID returns a single user by id
func GetUsuarioByID(db *gorm.DB, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := db.First(&usuario, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to fetch usuario %d: %w", id, err)
	}
	return &usuario, nil
}

// GetUsuarioByUsername returns a user by exact login name match
func GetUsuarioByUsername(db *gorm.DB, username string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := db.Where("usuario = ?", username).First(&usuario).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("failed to fetch usuario %q: %w", username, err)
	}
	return &usuario, nil
}

// CreateUsuario registers a new user with a bcrypt-hashed password
func CreateUsuario(db *gorm.DB, input *UsuarioCreate) (*models.Usuario, error) {
	username := strings.TrimSpace(input.Usuario)
	if username == "" || input.Contrasena == "" {
		return nil, NewValidationError("Usuario y contraseña son requeridos")
	}
	if len(username) > UsuarioMaxLength {
		return nil, NewValidationError("El usuario no puede tener más de 50 caracteres")
	}
	if len(input.Contrasena) < PasswordMinLength {
		return nil, NewValidationError("La contraseña debe tener al menos 6 caracteres")
	}

	rol := models.RolTecnico
	if input.Rol != "" {
		rol = NormalizeRol(input.Rol)
		if rol == "" {
			return nil, NewValidationError("Rol inválido. Debe ser: Admin, Tecnico o Supervisor")
		}
	}

	var count int64
	if err := db.Model(&models.Usuario{}).Where("usuario = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if count > 0 {
		return nil, ErrUsuarioExists
	}

	hash, err := HashPassword(input.Contrasena)
	if err != nil {
		return nil, err
	}

	usuario := &models.Usuario{
		Nombre:     SanitizeText(input.Nombre),
		Usuario:    username,
		Email:      strings.TrimSpace(input.Email),
		Contrasena: hash,
		Rol:        rol,
	}
	if err := db.Create(usuario).Error; err != nil {
		return nil, fmt.Errorf("failed to create usuario: %w", err)
	}

	return usuario, nil
}

// UpdateUsuario applies a partial update; a supplied password is re-hashed
func UpdateUsuario(db *gorm.DB, id uint, patch *UsuarioPatch) (*models.Usuario, error) {
	existing, err := GetUsuarioByID(db, id)
	if err != nil {
		return nil, err
	}

	if patch == nil || patch.IsEmpty() {
		return existing, nil
	}

	updates := map[string]interface{}{}

	if patch.Nombre != nil {
		updates["nombre"] = SanitizeText(*patch.Nombre)
	}

	if patch.Usuario != nil {
		username := strings.TrimSpace(*patch.Usuario)
		if username == "" {
			return nil, NewValidationError("El usuario no puede estar vacío")
		}
		var count int64
		if err := db.Model(&models.Usuario{}).
			Where("usuario = ? AND id <> ?", username, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrUsuarioExists
		}
		updates["usuario"] = username
	}

	if patch.Contrasena != nil {
		if len(*patch.Contrasena) < PasswordMinLength {
			return nil, NewValidationError("La contraseña debe tener al menos 6 caracteres")
		}
		hash, err := HashPassword(*patch.Contrasena)
		if err != nil {
			return nil, err
		}
		updates["contrasena"] = hash
	}

	if patch.Rol != nil {
		rol := NormalizeRol(*patch.Rol)
		if rol == "" {
			return nil, NewValidationError("Rol inválido. Debe ser: Admin, Tecnico o Supervisor")
		}
		updates["rol"] = rol
	}

	if err := db.Model(&models.Usuario{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update usuario %d: %w", id, err)
	}

	return GetUsuarioByID(db, id)
}

// DeleteUsuario removes a user permanently. References from expedientes and
// indicios are weak; they are not cascaded.
func DeleteUsuario(db *gorm.DB, id uint) error {
	if _, err := GetUsuarioByID(db, id); err != nil {
		return err
	}
	if err := db.Delete(&models.Usuario{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete usuario %d: %w", id, err)
	}
	return nil
}

// Login verifies credentials and opens a session. Unknown users and wrong
// passwords fail identically so the response never leaks account existence.
func Login(db *gorm.DB, username, password, ipAddress, userAgent string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, NewValidationError("Usuario y contraseña son requeridos")
	}

	usuario, err := GetUsuarioByUsername(db, username)
	if err != nil {
		if err == ErrUsuarioNotFound {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}

	if !CheckPassword(password, usuario.Contrasena) {
		return nil, ErrCredencialesInvalidas
	}

	session, err := CreateSession(db, usuario.ID, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Usuario: usuario, Token: session.Token}, nil
}
