package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/member"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists        = errs.New("email already registered")
	ErrInvalidCredentials        = errs.New("invalid credentials")
	ErrMemberNotVerified         = errs.New("member not verified")
	ErrVerificationTokenNotFound = errs.New("verification token not found")
	ErrAuthenticationFailed      = errs.New("authentication failed")
	ErrTokenGeneration           = errs.New("token generation failed")
	ErrRegistrationFailed        = errs.New("registration failed")
)

type LoginResult struct {
	MemberID    uuid.UUID
	Role        member.Role
	AccessToken string
	ExpiresIn   time.Duration
}

type AuthCommands interface {
	Register(ctx context.Context, reg auth.Registration) (*member.Member, error)
	Verify(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, credentials auth.Credentials) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow          shared.UnitOfWork
	members      shared.MemberRepository
	jwtService   *jwt.Service
	clock        clock.Clock
	defaultQuota member.DailyQuota
	tokenTTL     time.Duration
	logger       *slog.Logger
}

type AuthSettings struct {
	DefaultDailyQuota    int
	VerificationTokenTTL time.Duration
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	members shared.MemberRepository,
	jwtService *jwt.Service,
	clk clock.Clock,
	settings AuthSettings,
	logger *slog.Logger,
) AuthCommands {
	return &authCommandsImpl{
		uow:          uow,
		members:      members,
		jwtService:   jwtService,
		clock:        clk,
		defaultQuota: member.DailyQuota(max(0, settings.DefaultDailyQuota)),
		tokenTTL:     settings.VerificationTokenTTL,
		logger:       logger,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, reg auth.Registration) (*member.Member, error) {
	hash, err := password.HashPassword(reg.Credentials().Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrRegistrationFailed)
	}

	now := a.clock.Now()
	m := member.NewMember(reg.Credentials().Email(), hash, reg.Name(), a.defaultQuota, now, a.tokenTTL)

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Members().FindByEmail(ctx, m.Email().Value())
		if err != nil && !errs.Is(err, shared.ErrMemberNotFound) {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}

		if err := tx.Members().Create(ctx, m); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyExists
			}
			return err
		}
		return enqueueVerification(ctx, tx, m, now)
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("member registered", "member_id", m.ID().String())
	return m, nil
}

func (a *authCommandsImpl) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrVerificationTokenNotFound
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Members().FindByVerificationToken(ctx, token)
		if err != nil {
			if errs.Is(err, shared.ErrMemberNotFound) {
				return ErrVerificationTokenNotFound
			}
			return err
		}

		if err := m.Verify(token, a.clock.Now()); err != nil {
			return err
		}
		return tx.Members().Update(ctx, m)
	})
}

func (a *authCommandsImpl) ResendVerification(ctx context.Context, email string) error {
	addr, err := member.NewEmail(email)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Members().FindByEmail(ctx, addr.Value())
		if err != nil {
			return err
		}
		if m.IsEnabled() {
			return member.ErrAlreadyVerified
		}

		now := a.clock.Now()
		m.RotateVerificationToken(now, a.tokenTTL)
		if err := tx.Members().Update(ctx, m); err != nil {
			return err
		}
		return enqueueVerification(ctx, tx, m, now)
	})
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials auth.Credentials) (*LoginResult, error) {
	m, err := a.members.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Unknown email and wrong password look the same to the caller
		if errs.Is(err, shared.ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if err := password.ComparePassword(m.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !m.IsEnabled() {
		return nil, ErrMemberNotVerified
	}

	token, err := a.jwtService.GenerateToken(m.ID(), m.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		MemberID:    m.ID(),
		Role:        m.Role(),
		AccessToken: token,
		ExpiresIn:   a.jwtService.TokenDuration(),
	}, nil
}

// enqueueVerification writes the verification mail job in the same transaction as the member row.
func enqueueVerification(ctx context.Context, tx shared.Tx, m *member.Member, now time.Time) error {
	payload := shared.VerificationPayload{
		MemberID: m.ID(),
		Email:    m.Email().Value(),
		Token:    m.VerificationToken(),
	}
	if exp := m.TokenExpiresAt(); exp != nil {
		payload.ExpiresAt = *exp
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "marshal verification payload")
	}
	return tx.Notifications().CreateJob(ctx, shared.EventMemberVerification, shared.TopicMembers, raw, now)
}
