package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

type AuthService struct {
	DB     *gorm.DB
	jwtKey []byte
	ttl    time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, ttlHours int) *AuthService {
	return &AuthService{DB: db, jwtKey: []byte(jwtSecret), ttl: time.Duration(ttlHours) * time.Hour}
}

// Register creates a user with a bcrypt-hashed password. Duplicate
// email is a conflict.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{Name: name, Email: email, PasswordHash: string(hashed)}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and issues an HS256 token with the user id
// as subject. Wrong email and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var user model.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrUnauthorized
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrUnauthorized
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", nil, err
	}

	return tokenString, &user, nil
}

// CurrentUser loads the user behind a validated token subject.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
