package repository

import (
	"context"

	"court-booking/internal/domain/member"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const memberColumns = `id, email, password_hash, first_name, last_name, role, daily_hour_quota,
	membership_paid, enabled, verification_token, token_expires_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type MemberRepository struct {
	db db.DBTX
}

func NewMemberRepository(db db.DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO members (`+memberColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		pgconv.UUIDToPgtype(m.ID()),
		m.Email().Value(),
		m.PasswordHash(),
		m.Name().First(),
		m.Name().Last(),
		m.Role().String(),
		m.DailyQuota().Int(),
		m.MembershipPaid(),
		m.IsEnabled(),
		pgconv.TextToPgtype(m.VerificationToken()),
		pgconv.TimePtrToPgtype(m.TokenExpiresAt()),
		m.CreatedAt(),
		m.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("member email already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create member", err)
	}
	return nil
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE members
		SET first_name = $2,
		    last_name = $3,
		    role = $4,
		    daily_hour_quota = $5,
		    membership_paid = $6,
		    enabled = $7,
		    verification_token = $8,
		    token_expires_at = $9,
		    updated_at = $10
		WHERE id = $1`,
		pgconv.UUIDToPgtype(m.ID()),
		m.Name().First(),
		m.Name().Last(),
		m.Role().String(),
		m.DailyQuota().Int(),
		m.MembershipPaid(),
		m.IsEnabled(),
		pgconv.TextToPgtype(m.VerificationToken()),
		pgconv.TimePtrToPgtype(m.TokenExpiresAt()),
		m.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update member", err)
	}
	if tag.RowsAffected() == 0 {
		return memberNotFound(nil)
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return memberNotFound(nil)
	}
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, pgconv.UUIDToPgtype(id))
	return r.scanOne(row, "failed to find member by ID")
}

func (r *MemberRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1 FOR UPDATE`, pgconv.UUIDToPgtype(id))
	return r.scanOne(row, "failed to lock member")
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
	return r.scanOne(row, "failed to find member by email")
}

func (r *MemberRepository) FindByVerificationToken(ctx context.Context, token string) (*member.Member, error) {
	row := r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE verification_token = $1`, token)
	return r.scanOne(row, "failed to find member by verification token")
}

func (r *MemberRepository) scanOne(row rowScanner, msg string) (*member.Member, error) {
	m, err := scanMember(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, memberNotFound(err)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return m, nil
}

func scanMember(row rowScanner) (*member.Member, error) {
	var (
		id      pgtype.UUID
		token   pgtype.Text
		expires pgtype.Timestamptz
		p       member.ReconstructParams
	)
	err := row.Scan(
		&id,
		&p.Email,
		&p.PasswordHash,
		&p.FirstName,
		&p.LastName,
		&p.Role,
		&p.DailyHourQuota,
		&p.MembershipPaid,
		&p.Enabled,
		&token,
		&expires,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ID = pgconv.UUIDFromPgtype(id)
	p.VerificationToken = pgconv.TextFromPgtype(token)
	p.TokenExpiresAt = pgconv.TimePtrFromPgtype(expires)

	m, err := member.ReconstructMember(p)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt member row", err)
	}
	return m, nil
}

func memberNotFound(err error) error {
	return errs.Mark(infra.WrapRepoErr("member not found", err, infra.KindNotFound), shared.ErrMemberNotFound)
}
