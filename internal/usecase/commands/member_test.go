//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/domain/member"
	"court-booking/internal/infra/slotstore"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMemberCommands(m txMocks, slots shared.SlotStore) commands.MemberCommands {
	return commands.NewMemberCommands(m.uow, slots,
		clock.NewMockClock(time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)), discardLogger())
}

func TestMemberCommands_UpdateProfile(t *testing.T) {
	first, last, blank := "Erika", "Muster", "  "

	t.Run("成功: 両方の名前を変更", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		me := builder.NewMemberBuilder().WithName("Max", "Mustermann").MustBuildDomain()

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), me.ID()).Return(me, nil)
		m.members.EXPECT().Update(gomock.Any(), me).Return(nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).
			UpdateProfile(context.Background(), me.ID(), commands.ProfileUpdate{FirstName: &first, LastName: &last})
		require.NoError(t, err)
		assert.Equal(t, "Erika Muster", updated.Name().Full())
	})

	t.Run("成功: 指定されていない名前は維持される", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		me := builder.NewMemberBuilder().WithName("Max", "Mustermann").MustBuildDomain()

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), me.ID()).Return(me, nil)
		m.members.EXPECT().Update(gomock.Any(), me).Return(nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).
			UpdateProfile(context.Background(), me.ID(), commands.ProfileUpdate{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Erika Mustermann", updated.Name().Full())
	})

	t.Run("成功: 変更がなければ更新しない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		me := builder.NewMemberBuilder().WithName("Erika", "Muster").MustBuildDomain()

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), me.ID()).Return(me, nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).
			UpdateProfile(context.Background(), me.ID(), commands.ProfileUpdate{FirstName: &first, LastName: &last})
		require.NoError(t, err)
		assert.Equal(t, me, updated)
	})

	t.Run("失敗: 空白の名前", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		me := builder.NewMemberBuilder().MustBuildDomain()

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), me.ID()).Return(me, nil)

		_, err := newMemberCommands(m, slotstore.NewMemoryStore()).
			UpdateProfile(context.Background(), me.ID(), commands.ProfileUpdate{LastName: &blank})
		testutil.AssertErrorIs(t, err, member.ErrNameRequired)
	})
}

func TestMemberCommands_DeleteSelf(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 予約も削除される", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		me := builder.NewMemberBuilder().MustBuildDomain()

		store := slotstore.NewMemoryStore()
		b := builder.NewBookingBuilder().WithOwner(me.ID()).BuildDomain()
		ok, err := store.InsertIfAbsent(ctx, b)
		require.NoError(t, err)
		require.True(t, ok)

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), me.ID()).Return(me, nil)
		m.members.EXPECT().Delete(gomock.Any(), me.ID()).Return(nil)

		require.NoError(t, newMemberCommands(m, store).DeleteSelf(ctx, me.ID()))

		got, err := store.Get(ctx, b.Slot())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("エラー: 管理者は自分を削除できない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		admin := builder.NewMemberBuilder().AsAdmin().MustBuildDomain()

		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), admin.ID()).Return(admin, nil)

		err := newMemberCommands(m, slotstore.NewMemoryStore()).DeleteSelf(ctx, admin.ID())
		testutil.AssertErrorIs(t, err, commands.ErrCannotDeleteAdmin)
	})
}

func TestMemberCommands_AdminOperations(t *testing.T) {
	ctx := context.Background()
	admin := builder.NewMemberBuilder().WithEmail("admin@example.com").AsAdmin().MustBuildDomain()

	t.Run("SetAdmin: メンバーを管理者に昇格", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		target := builder.NewMemberBuilder().MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), admin.ID()).Return(admin, nil)
		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), target.ID()).Return(target, nil)
		m.members.EXPECT().Update(gomock.Any(), target).Return(nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetAdmin(ctx, admin.ID(), target.ID(), true)
		require.NoError(t, err)
		assert.True(t, updated.IsAdmin())
	})

	t.Run("SetAdmin: 自分の管理者権限は外せない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)

		_, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetAdmin(ctx, admin.ID(), admin.ID(), false)
		testutil.AssertErrorIs(t, err, commands.ErrCannotDemoteSelf)
	})

	t.Run("SetAdmin: 一般メンバーは実行できない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		actor := builder.NewMemberBuilder().MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), actor.ID()).Return(actor, nil)

		_, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetAdmin(ctx, actor.ID(), uuid.New(), true)
		testutil.AssertErrorIs(t, err, commands.ErrAdminRequired)
	})

	t.Run("SetAdmin: 無効化された管理者は実行できない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		disabled := builder.NewMemberBuilder().AsAdmin().With(func(b *builder.MemberBuilder) { b.Enabled = false }).MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), disabled.ID()).Return(disabled, nil)

		_, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetAdmin(ctx, disabled.ID(), uuid.New(), true)
		testutil.AssertErrorIs(t, err, shared.ErrMemberDisabled)
	})

	t.Run("SetMembershipPaid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		target := builder.NewMemberBuilder().MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), admin.ID()).Return(admin, nil)
		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), target.ID()).Return(target, nil)
		m.members.EXPECT().Update(gomock.Any(), target).Return(nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetMembershipPaid(ctx, admin.ID(), target.ID(), true)
		require.NoError(t, err)
		assert.True(t, updated.MembershipPaid())
	})

	t.Run("SetDailyQuota", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		target := builder.NewMemberBuilder().MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), admin.ID()).Return(admin, nil)
		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), target.ID()).Return(target, nil)
		m.members.EXPECT().Update(gomock.Any(), target).Return(nil)

		updated, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetDailyQuota(ctx, admin.ID(), target.ID(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.DailyQuota().Int())
	})

	t.Run("SetDailyQuota: 負の値は検証エラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)

		_, err := newMemberCommands(m, slotstore.NewMemoryStore()).SetDailyQuota(ctx, admin.ID(), uuid.New(), -1)
		testutil.AssertErrorIs(t, err, errs.ErrDomainValidation)
		testutil.AssertErrorIs(t, err, member.ErrNegativeQuota)
	})

	t.Run("Delete: 管理者は削除できない", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		other := builder.NewMemberBuilder().AsAdmin().MustBuildDomain()

		m.members.EXPECT().FindByID(gomock.Any(), admin.ID()).Return(admin, nil)
		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), other.ID()).Return(other, nil)

		err := newMemberCommands(m, slotstore.NewMemoryStore()).Delete(ctx, admin.ID(), other.ID())
		testutil.AssertErrorIs(t, err, commands.ErrCannotDeleteAdmin)
	})

	t.Run("Delete: 存在しないメンバー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newTxMocks(ctrl)
		missing := uuid.New()

		m.members.EXPECT().FindByID(gomock.Any(), admin.ID()).Return(admin, nil)
		m.members.EXPECT().FindByIDForUpdate(gomock.Any(), missing).Return(nil, shared.ErrMemberNotFound)

		err := newMemberCommands(m, slotstore.NewMemoryStore()).Delete(ctx, admin.ID(), missing)
		testutil.AssertErrorIs(t, err, shared.ErrMemberNotFound)
	})
}
