package models

// Account roles. Role is assigned at registration and never changes.
const (
	RolePatron  = "patron"
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

// Account represents a registered user of the platform.
type Account struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex" json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone"`
	Role         string     `gorm:"default:patron" json:"role"`
	Businesses   []Business `gorm:"foreignKey:OwnerID" json:"businesses,omitempty"`
}
