package model

import "time"

// PayStatus represents the payment status of a membership.
type PayStatus string

const (
	PayStatusDebe   PayStatus = "Debe"
	PayStatusPagado PayStatus = "Pagado"
)

// MembershipState mirrors UserState; only ACTIVE is ever written.
type MembershipState string

const MembershipStateActive MembershipState = "ACTIVE"

// Membership is a time-bounded record linking a user to a payment status
// and an optional outstanding balance.
type Membership struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	StartDate string          `json:"start_date" gorm:"type:varchar(10);not null;index"`
	EndDate   string          `json:"end_date" gorm:"type:varchar(10);not null"`
	Pay       PayStatus       `json:"pay" gorm:"type:varchar(10);not null;index"`
	Balance   *int64          `json:"balance"`
	State     MembershipState `json:"state" gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
