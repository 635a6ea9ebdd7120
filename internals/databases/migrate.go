package database

import (
	"fmt"

	"gorm.io/gorm"

	bookingModel "tourku_backend/internals/features/bookings/model"
	customerModel "tourku_backend/internals/features/customers/model"
	packageModel "tourku_backend/internals/features/packages/model"
	paymentModel "tourku_backend/internals/features/payments/model"
	scheduleModel "tourku_backend/internals/features/schedules/model"
	adminModel "tourku_backend/internals/features/users/admins/model"
)

// Models dipakai AutoMigrate (prod opsional via DB_AUTO_MIGRATE, test selalu).
func Models() []any {
	return []any{
		&adminModel.Admin{},
		&customerModel.Customer{},
		&packageModel.TourPackage{},
		&bookingModel.Booking{},
		&paymentModel.Payment{},
		&paymentModel.PaymentGatewayEvent{},
		&scheduleModel.Schedule{},
	}
}

// generate_schedule_code(nama paket, tanggal) → mis. "BAL-261020-X7Q"
const scheduleCodeFunctionSQL = `
CREATE OR REPLACE FUNCTION generate_schedule_code(p_package_name text, p_departure date)
RETURNS text
LANGUAGE plpgsql
AS $$
DECLARE
	v_prefix text;
	v_suffix text;
BEGIN
	v_prefix := upper(left(regexp_replace(coalesce(p_package_name, ''), '[^A-Za-z0-9]', '', 'g'), 3));
	IF v_prefix = '' THEN
		v_prefix := 'SCH';
	END IF;
	v_suffix := upper(substr(md5(random()::text || clock_timestamp()::text), 1, 3));
	RETURN v_prefix || '-' || to_char(p_departure, 'YYMMDD') || '-' || v_suffix;
END;
$$;`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(scheduleCodeFunctionSQL).Error; err != nil {
			return fmt.Errorf("create generate_schedule_code: %w", err)
		}
	}
	return nil
}
