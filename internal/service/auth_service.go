package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"questionnaire-api/internal/errs"
	"questionnaire-api/internal/model"
	"questionnaire-api/internal/repository"
	"questionnaire-api/internal/validation"
)

const tokenLifetime = 30 * 24 * time.Hour // matches the cookie max-age

// RegisterInput is the register request after decoding.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService handles account registration and cookie-session tokens
type AuthService struct {
	users     repository.UserRepo
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates an account and returns it with a signed session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	phone := strings.TrimSpace(in.Phone)

	var msgs []string
	msgs = append(msgs, validation.Email(email)...)
	msgs = append(msgs, validation.UserName(name)...)
	msgs = append(msgs, validation.Password(password)...)
	msgs = append(msgs, validation.Phone(phone)...)
	if len(msgs) > 0 {
		return nil, "", errs.Validation(msgs...)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	if existing != nil {
		return nil, "", errs.Validation("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", errs.Internal(err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Phone:    phone,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", errs.Conflict("User already exists")
		}
		return nil, "", errs.Internal(err)
	}

	token, err := s.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	return user, token, nil
}

// Login checks credentials and returns the account with a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	var msgs []string
	msgs = append(msgs, validation.Email(email)...)
	msgs = append(msgs, validation.Password(password)...)
	if len(msgs) > 0 {
		return nil, "", errs.Validation(msgs...)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", errs.Unauthorized("Invalid email or password")
	}

	token, err := s.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", errs.Internal(err)
	}
	return user, token, nil
}

// GenerateToken signs a session JWT for a user id.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	claims := &model.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a session JWT.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errs.Unauthorized("No authorized, please login")
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, errs.Unauthorized("No authorized, please login")
	}
	return claims, nil
}

// GetUser loads the account behind validated claims.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	if user == nil {
		return nil, errs.Unauthorized("No authorized, please login")
	}
	return user, nil
}
