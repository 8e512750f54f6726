package commands

import (
	"context"
	"log/slog"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/member"
	"court-booking/internal/domain/quota"
	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrSlotAlreadyTaken = errs.New("slot already taken")
	ErrQuotaExceeded    = errs.New("daily booking limit reached")
	ErrNotOwner         = errs.New("booking not owned by member")
	ErrSlotNotFound     = errs.New("booking not found")
	ErrUnknownCourt     = errs.New("unknown court")
	ErrUnknownEntryType = errs.New("unknown entry type")
	ErrAdminRequired    = errs.New("admin role required")
)

type ReserveRequest struct {
	Slot        slot.Identity
	EntryTypeID int64
}

// BookingCommands is the slot allocation engine. The acting member is always
// passed explicitly and resolved through the member directory.
type BookingCommands interface {
	Reserve(ctx context.Context, actorID uuid.UUID, req ReserveRequest) (*booking.Booking, error)
	Cancel(ctx context.Context, actorID uuid.UUID, s slot.Identity) error
	AdminCancel(ctx context.Context, actorID uuid.UUID, s slot.Identity) error
}

type bookingCommandsImpl struct {
	slots     shared.SlotStore
	directory shared.MemberDirectory
	catalog   shared.Catalog
	publisher shared.EventPublisher
	policy    quota.Policy
	clock     clock.Clock
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewBookingCommands(
	slots shared.SlotStore,
	directory shared.MemberDirectory,
	catalog shared.Catalog,
	publisher shared.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		slots:     slots,
		directory: directory,
		catalog:   catalog,
		publisher: publisher,
		policy:    quota.NewPolicy(),
		clock:     clk,
		logger:    logger,
		tracer:    otel.Tracer("court-booking/usecase/commands"),
	}
}

func (uc *bookingCommandsImpl) Reserve(ctx context.Context, actorID uuid.UUID, req ReserveRequest) (_ *booking.Booking, err error) {
	ctx, span := uc.startSpan(ctx, "BookingCommands.Reserve", req.Slot)
	defer func() { endSpan(span, err) }()

	if err = uc.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	actor, err := uc.directory.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// The count is not serialized against inserts for other slots, so
	// concurrent requests of one member may overshoot the quota by the
	// number of in-flight requests minus one.
	count, err := uc.directory.CountLiveBookings(ctx, actor.ID(), req.Slot.Date)
	if err != nil {
		return nil, errs.Wrapf(err, "count live bookings of %s on %s", actor.ID(), req.Slot.Date)
	}
	if remaining := uc.policy.Remaining(actor, req.Slot.Date, count); !remaining.Allows() {
		return nil, ErrQuotaExceeded
	}

	b, err := booking.NewBooking(req.Slot, actor.ID(), req.EntryTypeID, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrUnknownEntryType)
	}

	inserted, err := uc.slots.InsertIfAbsent(ctx, b)
	if err != nil {
		return nil, errs.Wrapf(err, "insert booking %s", req.Slot.Key())
	}
	if !inserted {
		return nil, ErrSlotAlreadyTaken
	}

	uc.publish(ctx, shared.NewBookingEvent(shared.EventBookingReserved, b, actor.ID(), uc.clock.Now()))
	return b, nil
}

func (uc *bookingCommandsImpl) Cancel(ctx context.Context, actorID uuid.UUID, s slot.Identity) (err error) {
	ctx, span := uc.startSpan(ctx, "BookingCommands.Cancel", s)
	defer func() { endSpan(span, err) }()

	actor, err := uc.directory.Resolve(ctx, actorID)
	if err != nil {
		return err
	}

	b, err := uc.load(ctx, s)
	if err != nil {
		return err
	}
	if !actor.CanCancel(b) {
		return ErrNotOwner
	}

	return uc.release(ctx, actor, b)
}

func (uc *bookingCommandsImpl) AdminCancel(ctx context.Context, actorID uuid.UUID, s slot.Identity) (err error) {
	ctx, span := uc.startSpan(ctx, "BookingCommands.AdminCancel", s)
	defer func() { endSpan(span, err) }()

	actor, err := uc.directory.Resolve(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}

	b, err := uc.load(ctx, s)
	if err != nil {
		return err
	}

	return uc.release(ctx, actor, b)
}

func (uc *bookingCommandsImpl) checkReferences(ctx context.Context, req ReserveRequest) error {
	ok, err := uc.catalog.CourtExists(ctx, req.Slot.CourtID)
	if err != nil {
		return errs.Wrap(err, "lookup court")
	}
	if !ok {
		return ErrUnknownCourt
	}

	ok, err = uc.catalog.EntryTypeExists(ctx, req.EntryTypeID)
	if err != nil {
		return errs.Wrap(err, "lookup entry type")
	}
	if !ok {
		return ErrUnknownEntryType
	}
	return nil
}

func (uc *bookingCommandsImpl) load(ctx context.Context, s slot.Identity) (*booking.Booking, error) {
	b, err := uc.slots.Get(ctx, s)
	if err != nil {
		return nil, errs.Wrap(err, "get booking")
	}
	if b == nil {
		return nil, ErrSlotNotFound
	}
	return b, nil
}

// release deletes through the same atomic primitive for owners and admins.
// A concurrent cancel that wins the delete leaves the loser with ErrSlotNotFound.
func (uc *bookingCommandsImpl) release(ctx context.Context, actor *member.Member, b *booking.Booking) error {
	deleted, err := uc.slots.DeleteIfExists(ctx, b.Slot())
	if err != nil {
		return errs.Wrap(err, "delete booking")
	}
	if !deleted {
		return ErrSlotNotFound
	}

	uc.publish(ctx, shared.NewBookingEvent(shared.EventBookingCancelled, b, actor.ID(), uc.clock.Now()))
	return nil
}

func (uc *bookingCommandsImpl) publish(ctx context.Context, evt shared.Event) {
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn("failed to publish booking event",
			"kind", evt.Kind,
			"error", err.Error())
	}
}

func (uc *bookingCommandsImpl) startSpan(ctx context.Context, name string, s slot.Identity) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int64("booking.court_id", s.CourtID),
		attribute.String("booking.date", s.Date.String()),
		attribute.Int("booking.hour", s.Hour),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
