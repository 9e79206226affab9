package auth

import "errors"

// Token errors raised by the HTTP middleware. Tokens are minted by the identity
// service; this backend only verifies them.
var (
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenExpired           = errors.New("token expired")
	ErrEmployeeClaimMissing   = errors.New("token has no employee_id claim")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
