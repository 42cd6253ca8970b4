package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rendaplus/rendaplus_backend/internal/apperrors"
	portsrepo "github.com/rendaplus/rendaplus_backend/internal/core/ports/repositories"
)

// SystemActorID identifies operations triggered by the scheduler rather than
// a human administrator. It bypasses the admin lookup but is only ever
// supplied by in-process callers, never parsed from a request.
const SystemActorID = "system"

// requireAdmin verifies that the caller account exists and carries the
// administrator flag. Privileged services call this before doing any work,
// even when the HTTP layer already gated the route.
func requireAdmin(ctx context.Context, accounts portsrepo.AccountReader, callerUserID string) error {
	if callerUserID == SystemActorID {
		return nil
	}
	caller, err := accounts.FindAccountByID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to resolve caller %s: %w", callerUserID, err)
	}
	if !caller.IsAdmin {
		return fmt.Errorf("%w: administrator access required", apperrors.ErrForbidden)
	}
	return nil
}
