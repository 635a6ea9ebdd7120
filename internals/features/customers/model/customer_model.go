package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	CustomerID          uuid.UUID  `gorm:"column:customer_id;type:uuid;primaryKey" json:"customer_id"`
	CustomerName        string     `gorm:"column:customer_name;type:varchar(160);not null" json:"customer_name"`
	CustomerCompanyName *string    `gorm:"column:customer_company_name;type:varchar(200)" json:"customer_company_name,omitempty"`
	CustomerEmail       string     `gorm:"column:customer_email;type:varchar(200);not null;index:idx_customers_email" json:"customer_email"`
	CustomerPhone       string     `gorm:"column:customer_phone;type:varchar(40)" json:"customer_phone"`
	CustomerUserID      *uuid.UUID `gorm:"column:customer_user_id;type:uuid" json:"customer_user_id,omitempty"`

	CustomerCreatedAt time.Time `gorm:"column:customer_created_at;autoCreateTime" json:"customer_created_at"`
	CustomerUpdatedAt time.Time `gorm:"column:customer_updated_at;autoUpdateTime" json:"customer_updated_at"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.CustomerID == uuid.Nil {
		c.CustomerID = uuid.New()
	}
	return nil
}
