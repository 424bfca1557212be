package entity

import "time"

// AdminSessionTTL sessiya amal qilish muddati
const AdminSessionTTL = 24 * time.Hour

// AdminSession admin sessiya
type AdminSession struct {
	UserID       int64
	LoginTime    time.Time
	LastActivity time.Time
}

// Expired sessiya muddati o'tganmi
func (s AdminSession) Expired(now time.Time) bool {
	return now.Sub(s.LastActivity) > AdminSessionTTL
}

// AdminActionKind admin harakati turi
type AdminActionKind string

const (
	AdminLogin         AdminActionKind = "login"
	AdminUploadCatalog AdminActionKind = "upload_catalog"
	AdminCleanAll      AdminActionKind = "clean_all"
)

// AdminAction admin harakatlari jurnali
type AdminAction struct {
	ID        string
	UserID    int64
	Kind      AdminActionKind
	Details   string
	Timestamp time.Time
}
