package model

import "time"

// UserState represents the lifecycle state of a user.
type UserState string

const (
	UserStateActive   UserState = "ACTIVE"
	UserStateInactive UserState = "INACTIVE"
)

// User represents a registered club member. Users are never hard-deleted;
// deactivation transitions State to INACTIVE.
type User struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"size:40;not null"`
	LastName         string    `json:"last_name" gorm:"size:40;not null"`
	RegistrationDate string    `json:"registration_date" gorm:"type:varchar(10);not null"`
	Hour             string    `json:"hour" gorm:"type:varchar(5);not null"`
	State            UserState `json:"state" gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
}
