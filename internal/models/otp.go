package models

import (
	"time"
)

// OTP kinds. Each kind has its own verification stream per email.
const (
	OTPKindRegister = "register"
	OTPKindLogin    = "login"
	OTPKindReset    = "reset"
)

// ValidOTPKind reports whether kind is one of the known kinds.
func ValidOTPKind(kind string) bool {
	switch kind {
	case OTPKindRegister, OTPKindLogin, OTPKindReset:
		return true
	}
	return false
}

// OTP is a one-time passcode record. Only the newest record per
// (email, kind) is ever eligible for verification; issuing a new code
// permanently supersedes older unconsumed ones. Records are never
// deleted — a lapsed row stays around as an audit trail. The code
// itself is stored only as a bcrypt hash.
type OTP struct {
	BaseModel
	Email     string     `gorm:"index:idx_otps_email_kind" json:"email"`
	Kind      string     `gorm:"index:idx_otps_email_kind" json:"kind"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}

// Used reports whether the code has already been consumed.
func (o *OTP) Used() bool {
	return o.UsedAt != nil
}

// ExpiredAt reports whether the code is past its TTL at the given time.
func (o *OTP) ExpiredAt(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
