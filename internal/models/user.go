package models

// User is a staff identity row.
type User struct {
	UserID       string `db:"user_id"`
	CompanyID    string `db:"company_id"` // Nullable
	BranchID     string `db:"branch_id"`  // Nullable
	Name         string `db:"name"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
