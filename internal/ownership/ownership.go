// Package ownership holds the shared owner-only mutation check used by
// every resource tied to its creating user.
package ownership

import "martial-service/pkg/apperrors"

// Owned is any resource created by exactly one user.
type Owned interface {
	OwnerID() uint
}

// Check permits the mutation iff the caller created the resource. Callers
// must resolve NotFound before invoking this.
func Check(resource Owned, callerID uint) error {
	if resource.OwnerID() != callerID {
		return apperrors.New(apperrors.Forbidden, "You are not authorized to modify this resource")
	}
	return nil
}
