package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/OVECJOE/sos/internals/configs"
	creditModel "github.com/OVECJOE/sos/internals/features/payment/credits/model"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

const (
	accessTTLDefault = 24 * time.Hour

	// WelcomeCredits is granted once, at first sign-in.
	WelcomeCredits = 5
)

/* ==========================
   Password helpers
========================== */

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// generateDummyPassword fills the password column for Google-only accounts.
func generateDummyPassword() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

/* ==========================
   Token issuing
========================== */

func IssueAccessToken(user *userModel.UserModel, now time.Time) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT secret is not configured")
	}

	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"user_name": user.UserName,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

/* ==========================
   Account creation
========================== */

// CreateUser inserts the user and the one-time welcome grant atomically:
// the new account, its 5 starter credits, and the CREDIT_GRANT ledger entry
// all commit together.
func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		user.Credits = WelcomeCredits
		user.IsOrganizer = true
		user.IsActive = true
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		ledger := creditModel.TransactionModel{
			UserID:      user.ID,
			Type:        creditModel.TransactionTypeCreditGrant,
			Amount:      WelcomeCredits,
			Description: "Welcome bonus",
		}
		return tx.Create(&ledger).Error
	})
}

/* ==========================
   Register / Login
========================== */

func Register(db *gorm.DB, userName, email, password string) (*userModel.UserModel, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := userModel.UserModel{
		UserName: userName,
		Email:    email,
		Password: hash,
	}
	if err := CreateUser(db, &user); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}
		return nil, err
	}
	return &user, nil
}

func Login(db *gorm.DB, email, password string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Email or password is wrong")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account has been deactivated")
	}
	if err := CheckPasswordHash(user.Password, password); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Email or password is wrong")
	}
	return &user, nil
}

/* ==========================
   Google sign-in
========================== */

// LoginGoogle verifies the Google ID token and finds or creates the account.
func LoginGoogle(db *gorm.DB, idToken string) (*userModel.UserModel, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	var user userModel.UserModel
	err = db.First(&user, "user_google_id = ?", googleID).Error
	if err == nil {
		if !user.IsActive {
			return nil, fiber.NewError(fiber.StatusForbidden, "Account has been deactivated")
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := userModel.UserModel{
		UserName: name,
		Email:    strings.ToLower(email),
		Password: generateDummyPassword(),
		GoogleID: &googleID,
	}
	if err := CreateUser(db, &newUser); err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}
		log.Println("[ERROR] Failed to create Google user:", err)
		return nil, err
	}
	return &newUser, nil
}
