package entity

import "time"

// User roles.
const (
	RoleAdmin       = "admin"
	RoleStorekeeper = "storekeeper"
	RoleClinician   = "clinician"
)

// User is an authenticated operator of the stock module.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string
	Name                string
	Role                string
	Status              string // active | disabled
	DefaultLocationUUID string // session location for the store-tier rule
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
