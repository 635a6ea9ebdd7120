package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin menandai user id dari identity provider sebagai operator.
type Admin struct {
	AdminUserID    uuid.UUID `gorm:"column:admin_user_id;type:uuid;primaryKey" json:"admin_user_id"`
	AdminIsActive  bool      `gorm:"column:admin_is_active;not null;default:true" json:"admin_is_active"`
	AdminCreatedAt time.Time `gorm:"column:admin_created_at;autoCreateTime" json:"admin_created_at"`
}

func (Admin) TableName() string { return "admins" }
