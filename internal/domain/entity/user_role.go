package entity

// OperationTypeScope grants a role the right to start one operation type.
type OperationTypeScope struct {
	Role              string
	OperationTypeUUID string
	OperationTypeName string
}

// LocationScope grants a role access to one location.
type LocationScope struct {
	Role         string
	LocationUUID string
	LocationName string
}

// UserRoleScopes aggregates the privileges granted to a user through roles:
// which operation types they may initiate and which locations they may act on.
type UserRoleScopes struct {
	OperationTypes []OperationTypeScope
	Locations      []LocationScope
}
