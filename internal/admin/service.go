// Package admin applies authorized mutations to user accounts on behalf of
// admin-tier requesters. Every operation consults the policy package before
// touching the store and emits an audit event afterwards.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/egxsim/egxsim/internal/audit"
	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/policy"
)

// Service is the account mutation service.
type Service struct {
	ids      *identity.Service
	repo     identity.Repository
	recorder audit.Recorder
}

// NewService builds an account mutation service.
func NewService(ids *identity.Service, repo identity.Repository, recorder audit.Recorder) *Service {
	return &Service{ids: ids, repo: repo, recorder: recorder}
}

// CreateAdminInput captures the fields of a new admin account.
type CreateAdminInput struct {
	Email     string
	Password  string
	KYCStatus identity.KYCStatus
	Balance   float64
}

// CreateAdmin provisions an admin-role account. Superadmin only.
func (s *Service) CreateAdmin(ctx context.Context, actor identity.User, in CreateAdminInput) (identity.Public, error) {
	if err := policy.CanCreateAdmin(actor.Role); err != nil {
		return identity.Public{}, err
	}
	if in.Email == "" || in.Password == "" {
		return identity.Public{}, fmt.Errorf("%w: email and password are required", identity.ErrValidation)
	}

	kyc := in.KYCStatus
	if kyc == "" {
		kyc = identity.KYCVerified
	}

	user, err := s.ids.Create(ctx, identity.CreateInput{
		Email:     in.Email,
		Password:  in.Password,
		Role:      identity.RoleAdmin,
		KYCStatus: kyc,
		Balance:   in.Balance,
		IsDemo:    false,
	})
	if err != nil {
		return identity.Public{}, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionUserCreate,
		ActorID:     actor.ID,
		ActorEmail:  actor.Email,
		TargetID:    user.ID,
		TargetEmail: user.Email,
	})
	return user.Public(), nil
}

// List returns accounts visible to the actor. Superadmins see everyone;
// admins see every account that is not an admin.
func (s *Service) List(ctx context.Context, actor identity.User) ([]identity.Public, error) {
	if !actor.Role.AtLeast(identity.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin role required", policy.ErrForbidden)
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]identity.Public, 0, len(users))
	for _, u := range users {
		if policy.ListVisible(actor.Role, u.Role) {
			visible = append(visible, u.Public())
		}
	}
	return visible, nil
}

// Get returns a single account if the policy permits the actor to view it.
func (s *Service) Get(ctx context.Context, actor identity.User, targetID string) (identity.Public, error) {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return identity.Public{}, err
	}
	if err := policy.Decide(policy.SubjectOf(actor), policy.SubjectOf(target), policy.ActionView); err != nil {
		return identity.Public{}, err
	}
	return target.Public(), nil
}

// UpdateInput holds the optional fields of an account patch. Nil fields
// retain their previous values.
type UpdateInput struct {
	Email     *string
	Role      *identity.Role
	KYCStatus *identity.KYCStatus
	Balance   *float64
	IsDemo    *bool
	Password  *string
}

// Update applies an authorized partial patch to the target account. All
// validation happens before the single store write, so a failure leaves the
// record untouched. Role changes only take effect for superadmin actors.
// Password changes are ignored for demo targets; converting a demo target
// to a regular account requires a password in the same patch.
func (s *Service) Update(ctx context.Context, actor identity.User, targetID string, in UpdateInput) (identity.Public, error) {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return identity.Public{}, err
	}

	actorSubj, targetSubj := policy.SubjectOf(actor), policy.SubjectOf(target)

	if in.Role != nil {
		if err := policy.Decide(actorSubj, targetSubj, policy.ActionChangeRole); err != nil {
			return identity.Public{}, err
		}
		if err := policy.CanAssignRole(actor.Role, *in.Role); err != nil {
			return identity.Public{}, err
		}
		if !in.Role.Valid() {
			return identity.Public{}, fmt.Errorf("%w: unknown role %q", identity.ErrValidation, *in.Role)
		}
	}

	if err := policy.Decide(actorSubj, targetSubj, policy.ActionUpdate); err != nil {
		return identity.Public{}, err
	}

	if in.Email != nil {
		email := identity.NormalizeEmail(*in.Email)
		if email == "" {
			return identity.Public{}, fmt.Errorf("%w: email cannot be empty", identity.ErrValidation)
		}
		target.Email = email
	}
	if in.Role != nil && policy.RoleChangeEffective(actor.Role) {
		target.Role = *in.Role
	}
	if in.KYCStatus != nil {
		if !in.KYCStatus.Valid() {
			return identity.Public{}, fmt.Errorf("%w: unknown kyc status %q", identity.ErrValidation, *in.KYCStatus)
		}
		target.KYCStatus = *in.KYCStatus
	}
	if in.Balance != nil {
		if *in.Balance < 0 {
			return identity.Public{}, fmt.Errorf("%w: balance cannot be negative", identity.ErrValidation)
		}
		target.Balance = *in.Balance
	}
	if in.IsDemo != nil {
		target.IsDemo = *in.IsDemo
	}
	if in.Password != nil && *in.Password != "" && !target.IsDemo {
		hash, err := identity.HashPassword(*in.Password)
		if err != nil {
			return identity.Public{}, err
		}
		target.PasswordHash = hash
	}
	if !target.IsDemo && len(target.PasswordHash) == 0 {
		return identity.Public{}, fmt.Errorf("%w: a password is required to convert a demo account", identity.ErrValidation)
	}

	target.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, target); err != nil {
		return identity.Public{}, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionUserUpdate,
		ActorID:     actor.ID,
		ActorEmail:  actor.Email,
		TargetID:    target.ID,
		TargetEmail: target.Email,
	})
	return target.Public(), nil
}

// Delete removes the target account if the policy permits it.
func (s *Service) Delete(ctx context.Context, actor identity.User, targetID string) error {
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := policy.Decide(policy.SubjectOf(actor), policy.SubjectOf(target), policy.ActionDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:      audit.ActionUserDelete,
		ActorID:     actor.ID,
		ActorEmail:  actor.Email,
		TargetID:    target.ID,
		TargetEmail: target.Email,
	})
	return nil
}
