//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/jwt"
	"court-booking/internal/pkg/password"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/testutil"
	sharedmock "court-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

type txMocks struct {
	uow     *sharedmock.MockUnitOfWork
	members *sharedmock.MockMemberRepository
	jobs    *sharedmock.MockNotificationRepository
}

// newTxMocks wires a unit of work whose transactions hand out the returned repositories.
func newTxMocks(ctrl *gomock.Controller) txMocks {
	m := txMocks{
		uow:     sharedmock.NewMockUnitOfWork(ctrl),
		members: sharedmock.NewMockMemberRepository(ctrl),
		jobs:    sharedmock.NewMockNotificationRepository(ctrl),
	}
	tx := sharedmock.NewMockTx(ctrl)
	tx.EXPECT().Members().Return(m.members).AnyTimes()
	tx.EXPECT().Notifications().Return(m.jobs).AnyTimes()
	m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).AnyTimes()
	return m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthCommands(m txMocks, loginRepo shared.MemberRepository, clk clock.Clock) commands.AuthCommands {
	return commands.NewAuthCommands(m.uow, loginRepo, jwt.NewService("test-secret", time.Hour), clk,
		commands.AuthSettings{DefaultDailyQuota: 2, VerificationTokenTTL: 24 * time.Hour}, discardLogger())
}

func TestAuthCommands_Register(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	t.Run("成功: 無効状態で作成され確認メールがキューに入る", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		reg, err := builder.NewAuthBuilder().BuildRegistration()
		require.NoError(t, err)

		m.members.EXPECT().FindByEmail(gomock.Any(), "test@example.com").Return(nil, shared.ErrMemberNotFound)
		m.members.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		var payload shared.VerificationPayload
		m.jobs.EXPECT().CreateJob(gomock.Any(), shared.EventMemberVerification, shared.TopicMembers, gomock.Any(), now).
			DoAndReturn(func(_ context.Context, _, _ string, raw []byte, _ time.Time) error {
				return json.Unmarshal(raw, &payload)
			})

		created, err := newAuthCommands(m, nil, clock.NewMockClock(now)).Register(ctx, reg)
		require.NoError(t, err)

		assert.False(t, created.IsEnabled())
		assert.Equal(t, member.RoleMember, created.Role())
		assert.Equal(t, 2, created.DailyQuota().Int())
		assert.NoError(t, password.ComparePassword(created.PasswordHash(), "password123"))
		assert.Equal(t, created.ID(), payload.MemberID)
		assert.Equal(t, created.VerificationToken(), payload.Token)
		assert.True(t, payload.ExpiresAt.Equal(now.Add(24*time.Hour)))
	})

	t.Run("エラー: 登録済みのメールアドレス", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		reg, err := builder.NewAuthBuilder().BuildRegistration()
		require.NoError(t, err)

		existing := builder.NewMemberBuilder().WithEmail("test@example.com").MustBuildDomain()
		m.members.EXPECT().FindByEmail(gomock.Any(), "test@example.com").Return(existing, nil)

		_, err = newAuthCommands(m, nil, clock.NewMockClock(now)).Register(ctx, reg)
		testutil.AssertErrorIs(t, err, commands.ErrEmailAlreadyExists)
	})

	t.Run("エラー: 同時登録による一意制約違反", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		reg, err := builder.NewAuthBuilder().BuildRegistration()
		require.NoError(t, err)

		m.members.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, shared.ErrMemberNotFound)
		m.members.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("failed to create member", errDBConnectionLost, infra.KindDuplicateKey))

		_, err = newAuthCommands(m, nil, clock.NewMockClock(now)).Register(ctx, reg)
		testutil.AssertErrorIs(t, err, commands.ErrEmailAlreadyExists)
	})
}

func TestAuthCommands_Verify(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		token   string
		at      time.Time
		found   bool
		wantErr error
	}{
		{name: "有効なトークンで有効化", token: "tok", at: now, found: true},
		{name: "期限切れ", token: "tok", at: now.Add(48 * time.Hour), found: true, wantErr: member.ErrVerificationTokenExpired},
		{name: "未知のトークン", token: "unknown", at: now, wantErr: commands.ErrVerificationTokenNotFound},
		{name: "空のトークン", token: "", at: now, wantErr: commands.ErrVerificationTokenNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newTxMocks(ctrl)
			pending := builder.NewMemberBuilder().AsUnverified("tok", now.Add(24*time.Hour)).MustBuildDomain()

			if tc.token != "" {
				if tc.found {
					m.members.EXPECT().FindByVerificationToken(gomock.Any(), tc.token).Return(pending, nil)
				} else {
					m.members.EXPECT().FindByVerificationToken(gomock.Any(), tc.token).Return(nil, shared.ErrMemberNotFound)
				}
			}
			if tc.wantErr == nil {
				m.members.EXPECT().Update(gomock.Any(), pending).Return(nil)
			}

			err := newAuthCommands(m, nil, clock.NewMockClock(tc.at)).Verify(ctx, tc.token)
			if tc.wantErr != nil {
				testutil.AssertErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, pending.IsEnabled())
		})
	}
}

func TestAuthCommands_ResendVerification(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	t.Run("成功: トークンを再発行してキューに入れる", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		pending := builder.NewMemberBuilder().AsUnverified("old", now).MustBuildDomain()

		m.members.EXPECT().FindByEmail(gomock.Any(), "member@example.com").Return(pending, nil)
		m.members.EXPECT().Update(gomock.Any(), pending).Return(nil)
		m.jobs.EXPECT().CreateJob(gomock.Any(), shared.EventMemberVerification, shared.TopicMembers, gomock.Any(), now).Return(nil)

		require.NoError(t, newAuthCommands(m, nil, clock.NewMockClock(now)).ResendVerification(ctx, "member@example.com"))
		assert.NotEqual(t, "old", pending.VerificationToken())
	})

	t.Run("エラー: 有効化済み", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		m.members.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(builder.NewMemberBuilder().MustBuildDomain(), nil)

		err := newAuthCommands(m, nil, clock.NewMockClock(now)).ResendVerification(ctx, "member@example.com")
		testutil.AssertErrorIs(t, err, member.ErrAlreadyVerified)
	})

	t.Run("エラー: 不正なメールアドレス", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)

		err := newAuthCommands(m, nil, clock.NewMockClock(now)).ResendVerification(ctx, "not-an-email")
		testutil.AssertErrorIs(t, err, member.ErrInvalidEmail)
	})
}

func TestAuthCommands_Login(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	hash, err := password.HashPassword("password123")
	require.NoError(t, err)
	otherHash, err := password.HashPassword("another-secret")
	require.NoError(t, err)
	creds, err := builder.NewAuthBuilder().BuildCredentials()
	require.NoError(t, err)

	testCases := []struct {
		name    string
		setup   func(repo *sharedmock.MockMemberRepository)
		wantErr error
	}{
		{
			name: "成功",
			setup: func(repo *sharedmock.MockMemberRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), "test@example.com").
					Return(builder.NewMemberBuilder().WithEmail("test@example.com").WithPasswordHash(hash).MustBuildDomain(), nil)
			},
		},
		{
			name: "未登録メールは認証エラー",
			setup: func(repo *sharedmock.MockMemberRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
					Return(nil, shared.ErrMemberNotFound)
			},
			wantErr: commands.ErrInvalidCredentials,
		},
		{
			name: "パスワード不一致",
			setup: func(repo *sharedmock.MockMemberRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
					Return(builder.NewMemberBuilder().WithPasswordHash(otherHash).MustBuildDomain(), nil)
			},
			wantErr: commands.ErrInvalidCredentials,
		},
		{
			name: "未確認メンバーはログイン不可",
			setup: func(repo *sharedmock.MockMemberRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
					Return(builder.NewMemberBuilder().WithPasswordHash(hash).AsUnverified("tok", now.Add(time.Hour)).MustBuildDomain(), nil)
			},
			wantErr: commands.ErrMemberNotVerified,
		},
		{
			name: "DB障害",
			setup: func(repo *sharedmock.MockMemberRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)
			},
			wantErr: commands.ErrAuthenticationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := sharedmock.NewMockMemberRepository(ctrl)
			tc.setup(repo)

			result, err := newAuthCommands(newTxMocks(ctrl), repo, clock.NewRealClock()).Login(ctx, creds)
			if tc.wantErr != nil {
				testutil.AssertErrorIs(t, err, tc.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.Equal(t, time.Hour, result.ExpiresIn)
			assert.Equal(t, member.RoleMember, result.Role)
		})
	}
}
