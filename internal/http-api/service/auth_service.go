package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"innervoice/internal/config"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/repository"
	"innervoice/internal/middleware/auth"
)

var (
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrInvalidOtp         = errors.New("invalid otp")
	ErrOtpExpired         = errors.New("otp expired")
	ErrNotAdmin           = errors.New("admin access required")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	userTokenLength  = 60
	adminTokenLength = 80
)

// MailSender dispatches transactional mail. Satisfied by mailer.Mailer.
type MailSender interface {
	Send(to, subject, body string) error
}

type AuthService interface {
	Register(name, email, password string) (*models.User, error)
	VerifyOtp(email, otp string) (token string, user *models.User, err error)
	ResendOtp(email string) error
	Login(email, password string) (token string, user *models.User, err error)
	AdminLogin(email, password string) (token string, user *models.User, err error)
	ForgotPassword(email string) error
	ResetPassword(email, otp, password string) error
	Logout(user *models.User) error
	Authenticate(token string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	mail     MailSender
	otpTTL   time.Duration
}

func NewAuthService(userRepo repository.UserRepository, mail MailSender, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		otpTTL:   cfg.OtpTTL, // 10 minutes
	}
}

// Register creates an unverified user and dispatches the verification OTP.
func (s *authService) Register(name, email, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		IsVerified: false,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.issueOtp(user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyOtp flips the user to verified, clears the OTP fields, and issues
// the first session token. The plaintext token is returned exactly once.
func (s *authService) VerifyOtp(email, otp string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if user.IsVerified {
		return "", user, ErrAlreadyVerified
	}

	if err := s.validateOtp(user, otp); err != nil {
		return "", nil, err
	}

	user.IsVerified = true
	user.OtpCode = nil
	user.OtpExpiresAt = nil

	token, err := s.issueToken(user, userTokenLength)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ResendOtp issues a fresh code. Unknown emails are reported; already
// verified accounts get a silent no-op.
func (s *authService) ResendOtp(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return nil
	}

	return s.issueOtp(user)
}

// Login authenticates a verified user and rotates the session token:
// a single token is active per user, so any previous one stops working.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		// User not found: dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	token, err := s.issueToken(user, userTokenLength)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// AdminLogin is Login with the admin gate and a longer token.
func (s *authService) AdminLogin(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsAdmin {
		return "", nil, ErrNotAdmin
	}

	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	token, err := s.issueToken(user, adminTokenLength)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ForgotPassword always reports success to the caller regardless of whether
// the email exists, so the endpoint cannot be used to enumerate accounts.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.issueOtp(user)
}

// ResetPassword performs the OTP-gated password change and revokes the
// active session token, forcing a fresh login.
func (s *authService) ResetPassword(email, otp, password string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.validateOtp(user, otp); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.OtpCode = nil
	user.OtpExpiresAt = nil
	user.APIToken = nil

	return s.userRepo.Save(user)
}

// Logout clears the stored token digest.
func (s *authService) Logout(user *models.User) error {
	user.APIToken = nil
	return s.userRepo.Save(user)
}

// Authenticate resolves a raw bearer token to a user by its sha-256 digest.
func (s *authService) Authenticate(token string) (*models.User, error) {
	user, err := s.userRepo.FindByTokenDigest(hashToken(token))
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// validateOtp is a pure check: it never mutates the user. Clearing the
// stored code is the calling flow's responsibility (verify, reset).
func (s *authService) validateOtp(user *models.User, otp string) error {
	if user.OtpCode == nil || *user.OtpCode != otp {
		return ErrInvalidOtp
	}
	if user.OtpExpiresAt != nil && time.Now().After(*user.OtpExpiresAt) {
		return ErrOtpExpired
	}
	return nil
}

// issueOtp generates a 6-digit code with an absolute expiry, persists both
// on the user record, and mails the code.
func (s *authService) issueOtp(user *models.User) error {
	code, err := generateOtp()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	user.OtpCode = &code
	user.OtpExpiresAt = &expiresAt

	if err := s.userRepo.Save(user); err != nil {
		return err
	}

	body := fmt.Sprintf("Your InnerVoice verification code is: %s", code)
	return s.mail.Send(user.Email, "InnerVoice OTP Verification", body)
}

// issueToken stores a fresh random token's digest on the user and returns
// the plaintext. Only the digest is ever persisted, so a database leak does
// not yield usable credentials.
func (s *authService) issueToken(user *models.User, length int) (string, error) {
	token, err := randomToken(length)
	if err != nil {
		return "", err
	}

	digest := hashToken(token)
	user.APIToken = &digest

	if err := s.userRepo.Save(user); err != nil {
		return "", err
	}

	return token, nil
}

const tokenCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func randomToken(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(tokenCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenCharset[n.Int64()]
	}
	return string(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateOtp() (string, error) {
	// 100000..999999, compared as a string, not numerically
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
