package services

import (
	"context"
	"errors"
	"strings"

	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore persists user accounts
type UserStore struct {
	DB *gorm.DB

	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost
	Cost int
}

// NewUserStore returns a store using bcrypt.DefaultCost
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// NormalizeEmail lowercases and trims an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and stores a new user
func (s *UserStore) Create(ctx context.Context, name, email, password string, isAdmin bool) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, types.NewValidationError("Email is required")
	}
	if password == "" {
		return nil, types.NewValidationError("Password is required")
	}

	if _, err := s.FindByEmail(ctx, email); err == nil {
		return nil, errDuplicateEmail()
	} else if !types.IsType(err, types.NotFound) {
		return nil, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, types.NewValidationError("Password cannot be used: %v", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errDuplicateEmail()
		}
		return nil, types.NewServerError(err)
	}
	return user, nil
}

// FindByEmail looks a user up by normalized email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return &user, nil
}

// FindByID looks a user up by id
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return &user, nil
}

// VerifyPassword compares plaintext against the stored hash
func (s *UserStore) VerifyPassword(user *models.User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}

// List returns every user, oldest first
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return users, nil
}

// UpdateName changes the display name of a user
func (s *UserStore) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(name)
	if err := s.DB.WithContext(ctx).Model(user).Update("name", user.Name).Error; err != nil {
		return nil, types.NewServerError(err)
	}
	return user, nil
}

// Delete removes a user
func (s *UserStore) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return types.NewServerError(res.Error)
	}
	if res.RowsAffected == 0 {
		return types.NewNotFound("User not found")
	}
	return nil
}

func errDuplicateEmail() error {
	return types.NewError(types.DuplicateEmail, "Email already exists", nil)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// notFoundOr maps gorm.ErrRecordNotFound to NotFound and anything else to ServerError
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFound(message)
	}
	return types.NewServerError(err)
}
