package auth

import (
	"library-catalog/app/server/constants"
	"strings"
)

// NormalizeEmail case-folds an email address for uniqueness comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ResolveRole maps a requested role string onto the fixed role set. Anything
// other than the admin role name, compared case-insensitively, is an author.
func ResolveRole(requested string) string {
	if strings.EqualFold(strings.TrimSpace(requested), constants.RoleAdmin) {
		return constants.RoleAdmin
	}
	return constants.RoleAuthor
}
