package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"example.com/glams-api/internal/model"
)

const tokenLifetime = 24 * time.Hour

type AdminClaims struct {
	ID    uint
	Email string
	Role  string
}

type AuthService interface {
	Login(email, password string) (string, model.Admin, error)
	ParseToken(token string) (AdminClaims, error)
	Profile(id uint) (model.Admin, error)
	Seed(email, name, password string) (model.Admin, bool, error)
}

type authService struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret string) AuthService {
	return &authService{db: db, secret: []byte(secret), now: time.Now}
}

func (a *authService) Login(email, password string) (string, model.Admin, error) {
	var admin model.Admin
	if err := a.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", model.Admin{}, ErrInvalidCredentials
		}
		return "", model.Admin{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", model.Admin{}, ErrInvalidCredentials
	}

	now := a.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	})
	token, err := t.SignedString(a.secret)
	if err != nil {
		return "", model.Admin{}, err
	}
	return token, admin, nil
}

func (a *authService) ParseToken(token string) (AdminClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AdminClaims{}, ErrTokenExpired
		}
		return AdminClaims{}, ErrTokenInvalid
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return AdminClaims{}, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return AdminClaims{ID: uint(idFloat), Email: email, Role: role}, nil
}

func (a *authService) Profile(id uint) (model.Admin, error) {
	var admin model.Admin
	if err := a.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Admin{}, ErrAdminNotFound
		}
		return model.Admin{}, err
	}
	return admin, nil
}

// Seed creates the admin account if it does not exist yet. The second return
// is false when the email was already present.
func (a *authService) Seed(email, name, password string) (model.Admin, bool, error) {
	var existing model.Admin
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Admin{}, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Admin{}, false, err
	}
	admin := model.Admin{Email: email, Name: name, PasswordHash: string(hash)}
	if err := a.db.Create(&admin).Error; err != nil {
		return model.Admin{}, false, err
	}
	return admin, true, nil
}
