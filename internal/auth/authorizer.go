package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authorizer resolves an identity's role from the user store.
type Authorizer struct {
	users  UserFinder
	logger *zap.Logger
}

func NewAuthorizer(users UserFinder, logger *zap.Logger) *Authorizer {
	return &Authorizer{users: users, logger: logger}
}

// Authorize allows only identities whose stored role is admin. A missing
// user record, a missing role field and a failed lookup all deny.
func (a *Authorizer) Authorize(ctx context.Context, identity string) Decision {
	if identity == "" {
		return Deny
	}
	user, err := a.users.FindByEmail(ctx, identity)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("role lookup failed, denying",
				zap.String("identity", identity),
				zap.Error(err),
			)
		}
		return Deny
	}
	if user.IsAdmin() {
		return Allow
	}
	return Deny
}

// RequireAdmin is Authorize expressed as an error.
func (a *Authorizer) RequireAdmin(ctx context.Context, identity string) error {
	if a.Authorize(ctx, identity) != Allow {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOwner allows identity to act on resources owned by owner only when
// they are the same. The admin role does not widen this.
func AuthorizeOwner(identity, owner string) Decision {
	if identity != "" && identity == owner {
		return Allow
	}
	return Deny
}

func RequireOwner(identity, owner string) error {
	if AuthorizeOwner(identity, owner) != Allow {
		return ErrForbidden
	}
	return nil
}
