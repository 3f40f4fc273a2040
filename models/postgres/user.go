package postgres

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

/*
 * 'User' defines a registered Guessify player. The password hash is never
 * serialized outward.
 */
type User struct {
	ID           string    `gorm:"primaryKey;size:50;not null" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"-"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Score        int       `gorm:"default:0" json:"score"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Random identifier generation, shared by users and games.
func generateID(length int) string {
	id := make([]byte, length)
	for i := range id {
		id[i] = charset[rand.Intn(len(charset))]
	}
	return string(id)
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateID(16)
	}
	return nil
}
