package service

import "errors"

// Errors returned by the services and mapped to status codes by the handlers
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDuplicateDocument   = errors.New("an employee with this document already exists")
	ErrDuplicateEmail      = errors.New("email is already in use")
	ErrInvalidLookup       = errors.New("referenced catalog entry does not exist")
	ErrInvalidEmployee     = errors.New("invalid employee data")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrNoPassword          = errors.New("employee has no password configured")
	ErrEmailTaken          = errors.New("an administrator with this email already exists")
	ErrUnknownCatalog      = errors.New("unknown catalog")
	ErrCatalogNotFound     = errors.New("catalog entry not found")
	ErrInvalidName         = errors.New("name is required")
	ErrDuplicateName       = errors.New("a catalog entry with this name already exists")
	ErrCatalogInUse        = errors.New("catalog entry is referenced by employees")
	ErrForbidden           = errors.New("access denied")
	ErrUnsupportedFormat   = errors.New("unsupported format")
)
