package commands

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/member"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/patch"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCannotDeleteAdmin = errs.New("administrators cannot be deleted")
	ErrCannotDemoteSelf  = errs.New("administrators cannot revoke their own admin role")
)

// ProfileUpdate carries the changed name parts; nil keeps the stored value.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}

// MemberCommands covers self-service profile changes and the admin member management.
type MemberCommands interface {
	UpdateProfile(ctx context.Context, actorID uuid.UUID, upd ProfileUpdate) (*member.Member, error)
	DeleteSelf(ctx context.Context, actorID uuid.UUID) error

	SetAdmin(ctx context.Context, actorID, targetID uuid.UUID, isAdmin bool) (*member.Member, error)
	SetMembershipPaid(ctx context.Context, actorID, targetID uuid.UUID, paid bool) (*member.Member, error)
	SetDailyQuota(ctx context.Context, actorID, targetID uuid.UUID, hours int) (*member.Member, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
}

type memberCommandsImpl struct {
	uow    shared.UnitOfWork
	slots  shared.SlotStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewMemberCommands(uow shared.UnitOfWork, slots shared.SlotStore, clk clock.Clock, logger *slog.Logger) MemberCommands {
	return &memberCommandsImpl{
		uow:    uow,
		slots:  slots,
		clock:  clk,
		logger: logger,
	}
}

func (uc *memberCommandsImpl) UpdateProfile(ctx context.Context, actorID uuid.UUID, upd ProfileUpdate) (*member.Member, error) {
	var updated *member.Member
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Members().FindByIDForUpdate(ctx, actorID)
		if err != nil {
			return err
		}
		if !patch.Changed(upd.FirstName, m.Name().First()) && !patch.Changed(upd.LastName, m.Name().Last()) {
			updated = m
			return nil
		}

		name, err := member.NewName(
			patch.Coalesce(upd.FirstName, m.Name().First()),
			patch.Coalesce(upd.LastName, m.Name().Last()),
		)
		if err != nil {
			return err
		}
		m.Rename(name, uc.clock.Now())
		if err := tx.Members().Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *memberCommandsImpl) DeleteSelf(ctx context.Context, actorID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Members().FindByIDForUpdate(ctx, actorID)
		if err != nil {
			return err
		}
		if m.IsAdmin() {
			return ErrCannotDeleteAdmin
		}
		return tx.Members().Delete(ctx, m.ID())
	})
	if err != nil {
		return err
	}

	uc.purgeBookings(ctx, actorID)
	return nil
}

func (uc *memberCommandsImpl) SetAdmin(ctx context.Context, actorID, targetID uuid.UUID, isAdmin bool) (*member.Member, error) {
	if actorID == targetID && !isAdmin {
		return nil, ErrCannotDemoteSelf
	}
	return uc.updateAsAdmin(ctx, actorID, targetID, func(m *member.Member) error {
		m.ChangeRole(member.RoleFromAdminFlag(isAdmin), uc.clock.Now())
		return nil
	})
}

func (uc *memberCommandsImpl) SetMembershipPaid(ctx context.Context, actorID, targetID uuid.UUID, paid bool) (*member.Member, error) {
	return uc.updateAsAdmin(ctx, actorID, targetID, func(m *member.Member) error {
		m.ChangeMembershipPaid(paid, uc.clock.Now())
		return nil
	})
}

func (uc *memberCommandsImpl) SetDailyQuota(ctx context.Context, actorID, targetID uuid.UUID, hours int) (*member.Member, error) {
	q, err := member.NewDailyQuota(hours)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	return uc.updateAsAdmin(ctx, actorID, targetID, func(m *member.Member) error {
		m.ChangeDailyQuota(q, uc.clock.Now())
		return nil
	})
}

func (uc *memberCommandsImpl) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := requireAdmin(ctx, tx, actorID); err != nil {
			return err
		}
		target, err := tx.Members().FindByIDForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		if target.IsAdmin() {
			return ErrCannotDeleteAdmin
		}
		return tx.Members().Delete(ctx, target.ID())
	})
	if err != nil {
		return err
	}

	uc.purgeBookings(ctx, targetID)
	return nil
}

func (uc *memberCommandsImpl) updateAsAdmin(ctx context.Context, actorID, targetID uuid.UUID, mutate func(m *member.Member) error) (*member.Member, error) {
	var updated *member.Member
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := requireAdmin(ctx, tx, actorID); err != nil {
			return err
		}
		target, err := tx.Members().FindByIDForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		if err := mutate(target); err != nil {
			return err
		}
		if err := tx.Members().Update(ctx, target); err != nil {
			return err
		}
		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// purgeBookings drops live bookings of a removed member. The member row is
// already gone, so a failure here only leaves orphaned slots behind.
func (uc *memberCommandsImpl) purgeBookings(ctx context.Context, memberID uuid.UUID) {
	n, err := uc.slots.DeleteByOwner(ctx, memberID)
	if err != nil {
		uc.logger.Error("failed to purge bookings of deleted member",
			"member_id", memberID.String(),
			"error", err.Error())
		return
	}
	if n > 0 {
		uc.logger.Info("purged bookings of deleted member",
			"member_id", memberID.String(),
			"count", n)
	}
}

func requireAdmin(ctx context.Context, tx shared.Tx, actorID uuid.UUID) error {
	actor, err := tx.Members().FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsEnabled() {
		return shared.ErrMemberDisabled
	}
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
