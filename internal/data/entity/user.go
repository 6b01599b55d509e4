package entity

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

type User struct {
	BaseNoDelete
	Name          string       `db:"name"`
	Email         string       `db:"email"`
	PasswordHash  string       `db:"password"`
	Role          UserRole     `db:"role"`
	Provider      AuthProvider `db:"provider"`
	ProviderID    *string      `db:"provider_id"`
	EmailVerified bool         `db:"email_verified"`
	IsActive      bool         `db:"is_active"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
