package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
	"github.com/example/brewfinder/internal/utils"
)

// Codes are valid for ten minutes after issuance.
const otpTTL = 10 * time.Minute

// OTPService issues and verifies one-time passcodes.
type OTPService struct {
	store  store.Store
	mailer Mailer

	// now is swapped out by tests to exercise expiry.
	now func() time.Time
}

// NewOTPService constructs an OTPService.
func NewOTPService(st store.Store, mailer Mailer) *OTPService {
	return &OTPService{store: st, mailer: mailer, now: time.Now}
}

// Issue generates a fresh 6-digit code for (email, kind), persists it
// and dispatches it by mail. The newly issued record supersedes any
// older unconsumed ones for the same pair. A delivery failure does not
// undo issuance: the record stays so the code can be resent.
func (s *OTPService) Issue(email, kind string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	if !models.ValidOTPKind(kind) {
		return "", NewValidationError("invalid code kind")
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	codeHash, err := utils.HashPassword(code)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	otp := &models.OTP{
		Email:     email,
		Kind:      kind,
		CodeHash:  codeHash,
		ExpiresAt: s.now().Add(otpTTL),
	}
	if err := s.store.CreateOTP(otp); err != nil {
		return "", fmt.Errorf("persist code: %w", err)
	}

	subject := "Your BrewFinder verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	if err := s.mailer.Send(email, subject, body); err != nil {
		// The record is kept on purpose: an operator can resend.
		log.Printf("[OTP] delivery to %s failed: %v", email, err)
	}

	return code, nil
}

// Verify checks the submitted code against the single newest record for
// (email, kind) and consumes it on success. Consumption is a
// compare-and-set, so of two concurrent verifications exactly one
// succeeds and the other gets ErrCodeUsed.
func (s *OTPService) Verify(email, code, kind string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	otp, err := s.store.LatestOTP(email, kind)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeNotFound
		}
		return err
	}

	if otp.Used() {
		return ErrCodeUsed
	}
	if otp.ExpiredAt(s.now()) {
		return ErrCodeExpired
	}
	// bcrypt comparison is constant-time over the stored secret.
	if !utils.CheckPassword(otp.CodeHash, normalizeCode(code)) {
		return ErrCodeMismatch
	}

	won, err := s.store.ConsumeOTP(otp.ID, s.now())
	if err != nil {
		return err
	}
	if !won {
		return ErrCodeUsed
	}
	return nil
}

// generateCode returns a uniformly random 6-digit code in
// [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// normalizeCode strips everything but digits from user input.
func normalizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeEmail lower-cases and syntax-checks an email address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", NewValidationError("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", NewValidationError("invalid email address")
	}
	return email, nil
}
