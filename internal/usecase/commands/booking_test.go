//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/member"
	"court-booking/internal/domain/slot"
	"court-booking/internal/infra/directory"
	"court-booking/internal/infra/slotstore"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/testutil"
	sharedmock "court-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var errPublishDown = errors.New("broker unavailable")

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockCtrl  *gomock.Controller
	store     *slotstore.MemoryStore
	members   map[uuid.UUID]*member.Member
	publisher *sharedmock.MockEventPublisher
	published []shared.Event
	mu        sync.Mutex
	cmds      commands.BookingCommands

	alice *member.Member
	bob   *member.Member
	admin *member.Member
	day   slot.Date
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.store = slotstore.NewMemoryStore()
	s.members = map[uuid.UUID]*member.Member{}
	s.published = nil
	s.day = slot.NewDate(2024, time.May, 1)

	s.alice = s.addMember(builder.NewMemberBuilder().WithEmail("alice@example.com").WithDailyQuota(2))
	s.bob = s.addMember(builder.NewMemberBuilder().WithEmail("bob@example.com").WithDailyQuota(2))
	s.admin = s.addMember(builder.NewMemberBuilder().WithEmail("admin@example.com").AsAdmin().WithDailyQuota(0))

	repo := sharedmock.NewMockMemberRepository(s.mockCtrl)
	repo.EXPECT().FindByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (*member.Member, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			m, ok := s.members[id]
			if !ok {
				return nil, shared.ErrMemberNotFound
			}
			return m, nil
		}).AnyTimes()

	catalog := sharedmock.NewMockCatalog(s.mockCtrl)
	catalog.EXPECT().CourtExists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bool, error) { return id >= 1 && id <= 5, nil }).AnyTimes()
	catalog.EXPECT().EntryTypeExists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bool, error) { return id >= 1 && id <= 4, nil }).AnyTimes()
	catalog.EXPECT().ListCourts(gomock.Any()).Return([]court.Court{}, nil).AnyTimes()

	s.publisher = sharedmock.NewMockEventPublisher(s.mockCtrl)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt shared.Event) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.published = append(s.published, evt)
			return nil
		}).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewMockClock(time.Date(2024, time.April, 30, 9, 0, 0, 0, time.UTC))
	s.cmds = commands.NewBookingCommands(s.store, directory.New(repo, s.store), catalog, s.publisher, clk, logger)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) addMember(b *builder.MemberBuilder) *member.Member {
	m, err := b.BuildDomain()
	s.Require().NoError(err)
	s.members[m.ID()] = m
	return m
}

func (s *BookingCommandsTestSuite) slotAt(courtID int64, hour int) slot.Identity {
	id, err := slot.New(courtID, s.day, hour)
	s.Require().NoError(err)
	return id
}

func (s *BookingCommandsTestSuite) reserve(actor *member.Member, courtID int64, hour int) error {
	_, err := s.cmds.Reserve(s.ctx, actor.ID(), commands.ReserveRequest{Slot: s.slotAt(courtID, hour), EntryTypeID: 1})
	return err
}

func (s *BookingCommandsTestSuite) TestScenario() {
	s.Require().NoError(s.reserve(s.alice, 1, 10), "A reserves 10:00")
	testutil.RequireErrorIs(s.T(), s.reserve(s.bob, 1, 10), commands.ErrSlotAlreadyTaken, "B gets the taken slot")
	s.Require().NoError(s.reserve(s.alice, 1, 11), "A reserves 11:00")
	testutil.RequireErrorIs(s.T(), s.reserve(s.alice, 1, 12), commands.ErrQuotaExceeded, "A hits quota 2")
	s.Require().NoError(s.cmds.AdminCancel(s.ctx, s.admin.ID(), s.slotAt(1, 10)), "admin frees 10:00")
	s.Require().NoError(s.reserve(s.bob, 1, 10), "B now gets 10:00")

	b, err := s.store.Get(s.ctx, s.slotAt(1, 10))
	s.Require().NoError(err)
	s.Require().NotNil(b)
	s.Equal(s.bob.ID(), b.OwnerID())

	kinds := make([]string, 0, len(s.published))
	for _, evt := range s.published {
		kinds = append(kinds, evt.Kind)
	}
	s.Equal([]string{
		shared.EventBookingReserved,
		shared.EventBookingReserved,
		shared.EventBookingCancelled,
		shared.EventBookingReserved,
	}, kinds)
}

func (s *BookingCommandsTestSuite) TestReserve() {
	s.Run("成功: 予約が返され保存される", func() {
		s.SetupTest()
		b, err := s.cmds.Reserve(s.ctx, s.alice.ID(), commands.ReserveRequest{Slot: s.slotAt(2, 7), EntryTypeID: 3})
		s.Require().NoError(err)
		s.Equal(s.alice.ID(), b.OwnerID())
		s.Equal(int64(3), b.EntryTypeID())

		stored, err := s.store.Get(s.ctx, s.slotAt(2, 7))
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal(b.Slot(), stored.Slot())
	})

	s.Run("エラー: 存在しないコート", func() {
		s.SetupTest()
		err := s.reserve(s.alice, 9, 10)
		testutil.AssertErrorIs(s.T(), err, commands.ErrUnknownCourt)
	})

	s.Run("エラー: 存在しないエントリータイプ", func() {
		s.SetupTest()
		_, err := s.cmds.Reserve(s.ctx, s.alice.ID(), commands.ReserveRequest{Slot: s.slotAt(1, 10), EntryTypeID: 99})
		testutil.AssertErrorIs(s.T(), err, commands.ErrUnknownEntryType)
	})

	s.Run("エラー: 未登録メンバー", func() {
		s.SetupTest()
		_, err := s.cmds.Reserve(s.ctx, uuid.New(), commands.ReserveRequest{Slot: s.slotAt(1, 10), EntryTypeID: 1})
		testutil.AssertErrorIs(s.T(), err, shared.ErrMemberNotFound)
	})

	s.Run("エラー: 未認証メンバーは予約できない", func() {
		s.SetupTest()
		pending := s.addMember(builder.NewMemberBuilder().WithEmail("pending@example.com").
			AsUnverified("token", time.Now().Add(time.Hour)))
		testutil.AssertErrorIs(s.T(), s.reserve(pending, 1, 10), shared.ErrMemberDisabled)
	})

	s.Run("エラー: クォータ0のメンバーは予約できない", func() {
		s.SetupTest()
		zero := s.addMember(builder.NewMemberBuilder().WithEmail("zero@example.com").WithDailyQuota(0))
		testutil.AssertErrorIs(s.T(), s.reserve(zero, 1, 10), commands.ErrQuotaExceeded)
	})

	s.Run("管理者はクォータに制限されない", func() {
		s.SetupTest()
		for hour := 8; hour < 14; hour++ {
			s.Require().NoError(s.reserve(s.admin, 1, hour))
		}
		n, err := s.store.CountByOwnerAndDate(s.ctx, s.admin.ID(), s.day)
		s.Require().NoError(err)
		s.Equal(6, n)
	})

	s.Run("クォータは日付ごとに数える", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		s.Require().NoError(s.reserve(s.alice, 1, 11))

		next, err := slot.New(1, s.day.AddDays(1), 10)
		s.Require().NoError(err)
		_, err = s.cmds.Reserve(s.ctx, s.alice.ID(), commands.ReserveRequest{Slot: next, EntryTypeID: 1})
		s.NoError(err)
	})

	s.Run("キャンセル後はクォータが戻る", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		s.Require().NoError(s.reserve(s.alice, 1, 11))
		s.Require().NoError(s.cmds.Cancel(s.ctx, s.alice.ID(), s.slotAt(1, 10)))
		s.NoError(s.reserve(s.alice, 2, 10))
	})
}

func (s *BookingCommandsTestSuite) TestReserveToleratesPublishFailure() {
	failing := sharedmock.NewMockEventPublisher(s.mockCtrl)
	failing.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errPublishDown).Times(1)

	repo := sharedmock.NewMockMemberRepository(s.mockCtrl)
	repo.EXPECT().FindByID(gomock.Any(), s.alice.ID()).Return(s.alice, nil)
	catalog := sharedmock.NewMockCatalog(s.mockCtrl)
	catalog.EXPECT().CourtExists(gomock.Any(), int64(1)).Return(true, nil)
	catalog.EXPECT().EntryTypeExists(gomock.Any(), int64(1)).Return(true, nil)

	cmds := commands.NewBookingCommands(s.store, directory.New(repo, s.store), catalog, failing,
		clock.NewRealClock(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := cmds.Reserve(s.ctx, s.alice.ID(), commands.ReserveRequest{Slot: s.slotAt(1, 10), EntryTypeID: 1})
	s.Require().NoError(err)
	s.NotNil(b)

	stored, err := s.store.Get(s.ctx, s.slotAt(1, 10))
	s.Require().NoError(err)
	s.NotNil(stored)
}

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("所有者はキャンセルできる", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		s.Require().NoError(s.cmds.Cancel(s.ctx, s.alice.ID(), s.slotAt(1, 10)))

		b, err := s.store.Get(s.ctx, s.slotAt(1, 10))
		s.Require().NoError(err)
		s.Nil(b)
	})

	s.Run("他人の予約はキャンセルできない", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		testutil.AssertErrorIs(s.T(), s.cmds.Cancel(s.ctx, s.bob.ID(), s.slotAt(1, 10)), commands.ErrNotOwner)

		b, err := s.store.Get(s.ctx, s.slotAt(1, 10))
		s.Require().NoError(err)
		s.NotNil(b)
	})

	s.Run("管理者は通常キャンセルでも他人の予約を取り消せる", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		s.NoError(s.cmds.Cancel(s.ctx, s.admin.ID(), s.slotAt(1, 10)))
	})

	s.Run("二重キャンセルは見つからない", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.alice, 1, 10))
		s.Require().NoError(s.cmds.Cancel(s.ctx, s.alice.ID(), s.slotAt(1, 10)))
		testutil.AssertErrorIs(s.T(), s.cmds.Cancel(s.ctx, s.alice.ID(), s.slotAt(1, 10)), commands.ErrSlotNotFound)
	})

	s.Run("空きスロットのキャンセルは見つからない", func() {
		s.SetupTest()
		testutil.AssertErrorIs(s.T(), s.cmds.Cancel(s.ctx, s.alice.ID(), s.slotAt(3, 20)), commands.ErrSlotNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestAdminCancel() {
	s.Run("管理者は他人の予約を取り消せる", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.bob, 4, 18))
		s.Require().NoError(s.cmds.AdminCancel(s.ctx, s.admin.ID(), s.slotAt(4, 18)))

		b, err := s.store.Get(s.ctx, s.slotAt(4, 18))
		s.Require().NoError(err)
		s.Nil(b)
	})

	s.Run("一般メンバーは管理者キャンセルを使えない", func() {
		s.SetupTest()
		s.Require().NoError(s.reserve(s.bob, 4, 18))
		testutil.AssertErrorIs(s.T(), s.cmds.AdminCancel(s.ctx, s.bob.ID(), s.slotAt(4, 18)), commands.ErrAdminRequired)
	})

	s.Run("空きスロットは見つからない", func() {
		s.SetupTest()
		testutil.AssertErrorIs(s.T(), s.cmds.AdminCancel(s.ctx, s.admin.ID(), s.slotAt(4, 18)), commands.ErrSlotNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestConcurrentReserveSameSlot() {
	const workers = 32
	contenders := make([]*member.Member, workers)
	for i := range contenders {
		contenders[i] = s.addMember(builder.NewMemberBuilder().WithEmail("c" + uuid.NewString()[:8] + "@example.com"))
	}

	var (
		wg      sync.WaitGroup
		won     atomic.Int32
		taken   atomic.Int32
		start   = make(chan struct{})
		target  = s.slotAt(1, 10)
		request = commands.ReserveRequest{Slot: target, EntryTypeID: 1}
	)
	for _, m := range contenders {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := s.cmds.Reserve(s.ctx, id, request)
			switch {
			case err == nil:
				won.Add(1)
			case errs.Is(err, commands.ErrSlotAlreadyTaken):
				taken.Add(1)
			}
		}(m.ID())
	}
	close(start)
	wg.Wait()

	s.Equal(int32(1), won.Load())
	s.Equal(int32(workers-1), taken.Load())
}

// Concurrent reserves of different slots by one member are counted before
// any of them is inserted, so the member can end up above the quota. The
// overshoot is bounded by the number of in-flight requests minus one.
func (s *BookingCommandsTestSuite) TestConcurrentReserveQuotaIsBestEffort() {
	const inFlight = 8

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := 0; i < inFlight; i++ {
		wg.Add(1)
		go func(hour int) {
			defer wg.Done()
			<-start
			_ = s.reserve(s.alice, 2, hour)
		}(8 + i)
	}
	close(start)
	wg.Wait()

	n, err := s.store.CountByOwnerAndDate(s.ctx, s.alice.ID(), s.day)
	s.Require().NoError(err)
	s.GreaterOrEqual(n, s.alice.DailyQuota().Int())
	s.LessOrEqual(n, s.alice.DailyQuota().Int()+inFlight-1)
}
