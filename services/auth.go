package services

import (
	"context"
	"errors"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexon-digital/storefront-api/models"
)

type AuthService struct {
	db          *gorm.DB
	mailer      Mailer
	jwtSecret   []byte
	emailSecret []byte
	resetSecret []byte
	accessTTL   time.Duration
	frontendURL string
}

func NewAuthService(db *gorm.DB, mailer Mailer) (*AuthService, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	accessTTL := 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("invalid JWT_EXPIRES_IN duration")
		}
		accessTTL = d
	}

	return &AuthService{
		db:          db,
		mailer:      mailer,
		jwtSecret:   []byte(secret),
		emailSecret: []byte(os.Getenv("JWT_EMAIL_SECRET")),
		resetSecret: []byte(os.Getenv("JWT_RESET_SECRET")),
		accessTTL:   accessTTL,
		frontendURL: os.Getenv("FRONTEND_URL"),
	}, nil
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthenticatedUser struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// Register creates an inactive account and sends a verification link. A mail
// failure does not fail registration; the user can request a resend.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := models.RoleCustomer
	switch models.UserRole(in.Role) {
	case models.RoleAdmin, models.RoleVendor:
		role = models.UserRole(in.Role)
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: false, // activated by email verification
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}

	token, err := s.signToken(s.emailSecret, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	if err != nil {
		return err
	}

	if s.mailer != nil {
		verifyURL := s.frontendURL + "/verify-email?token=" + url.QueryEscape(token)
		if err := s.mailer.SendVerificationEmail(ctx, user.Email, verifyURL); err != nil {
			log.Printf("failed to send verification email to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *AuthService) Login(in LoginInput) (string, *AuthenticatedUser, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", in.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrUnauthorized("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return "", nil, ErrUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, ErrUnauthorized("please verify your email before logging in")
	}

	token, err := s.signToken(s.jwtSecret, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.accessTTL).Unix(),
		"iat":   time.Now().Unix(),
	})
	if err != nil {
		return "", nil, err
	}

	return token, &AuthenticatedUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.parseToken(s.emailSecret, token)
	if err != nil {
		return ErrInvalid("invalid or expired verification link")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", claims["sub"]).Error; err != nil {
		return ErrInvalid("user not found")
	}
	if user.IsActive {
		return nil
	}

	user.IsActive = true
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// ForgotPassword always behaves the same whether or not the email is
// registered, to avoid account enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.signToken(s.resetSecret, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(30 * time.Minute).Unix(),
	})
	if err != nil {
		return err
	}

	if s.mailer != nil {
		resetURL := s.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
		if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetURL); err != nil {
			log.Printf("failed to send reset email to %s: %v", user.Email, err)
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	claims, err := s.parseToken(s.resetSecret, token)
	if err != nil {
		return ErrInvalid("invalid or expired reset link")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", claims["sub"]).Error; err != nil {
		return ErrInvalid("user not found")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.db.Save(&user).Error
}

func (s *AuthService) GetLoggedInUser(userID string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) signToken(secret []byte, claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *AuthService) parseToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
