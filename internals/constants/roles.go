package constants

import "fmt"

// Template pesan error akses
const (
	ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."
	ErrLoginRequired       = "Silakan login untuk mengakses fitur %s."
)

// FeatureAdmin: nama fitur untuk seluruh route /api/a
const FeatureAdmin = "admin"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func LoginRequired(feature string) string {
	return fmt.Sprintf(ErrLoginRequired, feature)
}
