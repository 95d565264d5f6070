package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Password  string    `gorm:"not null" bson:"password" json:"-"` // bcrypt hash
	Name      string    `gorm:"not null" bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the part of a User that is safe to hand back to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
