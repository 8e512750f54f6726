//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/testutil"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMemberQueries_GetCurrent(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		view    *queries.MemberView
		repoErr error
		wantErr error
	}{
		{name: "有効なメンバー", view: builder.NewMemberBuilder().BuildView()},
		{
			name:    "未確認のメンバー",
			view:    builder.NewMemberBuilder().AsUnverified("tok", time.Now().Add(time.Hour)).BuildView(),
			wantErr: shared.ErrMemberDisabled,
		},
		{
			name:    "存在しないメンバー",
			repoErr: infra.WrapRepoErr("member not found", shared.ErrMemberNotFound, infra.KindNotFound),
			wantErr: shared.ErrMemberNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockMemberReadStore(ctrl)
			store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(tc.view, tc.repoErr)

			got, err := queries.NewMemberQueries(store).GetCurrent(ctx, uuid.New())
			if tc.wantErr != nil {
				testutil.AssertErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.view, got)
		})
	}
}

func TestMemberQueries_List(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)

	views := make([]*queries.MemberView, 3)
	for i := range views {
		v := builder.NewMemberBuilder().BuildView()
		v.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		views[i] = v
	}

	t.Run("次ページがある場合はカーソルを返す", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockMemberReadStore(ctrl)
		store.EXPECT().List(gomock.Any(), 3, (*queries.CursorPosition)(nil)).Return(views, nil)

		page, err := queries.NewMemberQueries(store).List(ctx, 2, "")
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		require.NotEmpty(t, page.NextCursor)

		pos, err := queries.DecodeAfterCursor(page.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, views[1].ID, pos.ID)
		assert.True(t, pos.CreatedAt.Equal(views[1].CreatedAt))
	})

	t.Run("最終ページはカーソルなし", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockMemberReadStore(ctrl)
		after := queries.EncodeAfterCursor(views[0].CreatedAt, views[0].ID)
		store.EXPECT().List(gomock.Any(), 3, gomock.Any()).Return(views[1:], nil)

		page, err := queries.NewMemberQueries(store).List(ctx, 2, after)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Empty(t, page.NextCursor)
	})

	t.Run("不正なカーソル", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockMemberReadStore(ctrl)

		_, err := queries.NewMemberQueries(store).List(ctx, 2, "not-a-cursor!")
		testutil.AssertErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
