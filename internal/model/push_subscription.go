package model

import "time"

// PushSubscription holds the information for a browser push subscription,
// plus which event categories the subscriber wants reminders for and how
// far in advance.
type PushSubscription struct {
	Endpoint    string    `gorm:"primaryKey"`
	P256DH      string    `gorm:"column:p256dh;not null"`
	Auth        string    `gorm:"not null"`
	LeadMinutes int       `gorm:"not null;default:15"`
	CreatedAt   time.Time `gorm:"not null"`

	// Associations
	Categories []*Category `gorm:"many2many:subscription_category_mapping;"`
}
