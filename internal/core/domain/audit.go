package domain

// Audit envelope keys stamped onto every outgoing entity payload. The names
// match the backend's PascalCase columns.
const (
	FieldCreatedOn  = "CreatedOn"
	FieldCreatedBy  = "CreatedBy"
	FieldModifiedOn = "ModifiedOn"
	FieldModifiedBy = "ModifiedBy"
	FieldIsActive   = "IsActive"
)

// Entity is any keyed record submitted to the backend.
type Entity map[string]any
