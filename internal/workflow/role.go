package workflow

import "github.com/iliyamo/lost-and-found/internal/model"

// ResolveRole derives a user's effective role from their user_roles
// records.  No record means the default RoleUser.  Duplicate records
// that agree collapse to that role; records that disagree are an
// explicit ambiguity and fail ErrAmbiguousRole instead of silently
// picking the first match.  Pure function, so the rule is trivially
// testable.
func ResolveRole(userID uint64, records []model.UserRole) (model.Role, error) {
	var resolved model.Role
	for _, rec := range records {
		if rec.UserID != userID {
			continue
		}
		if resolved == "" {
			resolved = rec.Role
			continue
		}
		if rec.Role != resolved {
			return "", ErrAmbiguousRole
		}
	}
	if resolved == "" {
		return model.RoleUser, nil
	}
	return resolved, nil
}
