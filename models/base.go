package models

import "time"

// BaseModel carries the identity and lifecycle timestamps shared by all
// persisted entities. CreatedAt/UpdatedAt are managed by GORM.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
