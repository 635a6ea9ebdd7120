package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tourku_backend/internals/features/customers/model"
)

type CustomerInput struct {
	Name        string
	CompanyName *string
	Email       string
	Phone       string
	UserID      *uuid.UUID
}

func FindCustomerByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Customer, error) {
	var c model.Customer
	if err := db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("customer_created_at ASC").
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCustomerByEmail: email sama persis → update nama/perusahaan/telepon, selain itu insert.
func UpsertCustomerByEmail(ctx context.Context, db *gorm.DB, in CustomerInput) (*model.Customer, error) {
	existing, err := FindCustomerByEmail(ctx, db, in.Email)
	switch {
	case err == nil:
		updates := map[string]any{
			"customer_name":         in.Name,
			"customer_company_name": in.CompanyName,
			"customer_phone":        in.Phone,
		}
		if existing.CustomerUserID == nil && in.UserID != nil {
			updates["customer_user_id"] = *in.UserID
			existing.CustomerUserID = in.UserID
		}
		if err := db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.CustomerName = in.Name
		existing.CustomerCompanyName = in.CompanyName
		existing.CustomerPhone = in.Phone
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		c := &model.Customer{
			CustomerName:        in.Name,
			CustomerCompanyName: in.CompanyName,
			CustomerEmail:       in.Email,
			CustomerPhone:       in.Phone,
			CustomerUserID:      in.UserID,
		}
		if err := db.WithContext(ctx).Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, err
	}
}
