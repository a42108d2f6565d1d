package model

// Role is a flat, uniquely named role that users can be assigned to.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:255;not null"`
}
