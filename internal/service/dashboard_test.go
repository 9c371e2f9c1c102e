package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	upstreammocks "github.com/nmoreno/portfolio-ui/internal/mocks/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDashboardServiceForTest(t *testing.T) (*DashboardService, *upstreammocks.MockBackendAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	svc, err := NewDashboardService(DashboardServiceOptions{Backend: backend})
	require.NoError(t, err)
	return svc, backend
}

func TestDashboardService_Summary(t *testing.T) {
	svc, backend := newDashboardServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		ListProjects(gomock.Any(), gomock.Any(), true).
		Return([]model.Project{{ID: "p1"}, {ID: "p2"}}, nil)
	backend.EXPECT().
		ListExperience(gomock.Any(), gomock.Any()).
		Return([]model.ExperienceEntry{{ID: "e1"}}, nil)
	backend.EXPECT().
		ListMessages(gomock.Any(), gomock.Any()).
		Return([]model.Message{
			{ID: "m1", Status: model.MessageStatusNew},
			{ID: "m2", Status: model.MessageStatusRead},
			{ID: "m3", Status: model.MessageStatusNew},
		}, nil)

	summary, err := svc.Summary(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Projects)
	assert.Equal(t, 1, summary.Experience)
	assert.Equal(t, 3, summary.Messages)
	assert.Equal(t, 2, summary.NewMessages)
}

func TestDashboardService_Summary_RecentMessagesNewestFirstCappedAtFive(t *testing.T) {
	svc, backend := newDashboardServiceForTest(t)
	sess := primedSession()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	inbox := make([]model.Message, 0, 7)
	for i := 0; i < 7; i++ {
		inbox = append(inbox, model.Message{
			ID:        fmt.Sprintf("m%d", i),
			Status:    model.MessageStatusRead,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	backend.EXPECT().
		ListProjects(gomock.Any(), gomock.Any(), true).
		Return(nil, nil)
	backend.EXPECT().
		ListExperience(gomock.Any(), gomock.Any()).
		Return(nil, nil)
	backend.EXPECT().
		ListMessages(gomock.Any(), gomock.Any()).
		Return(inbox, nil)

	summary, err := svc.Summary(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, summary.RecentMessages, 5)
	assert.Equal(t, "m6", summary.RecentMessages[0].ID)
	assert.Equal(t, "m2", summary.RecentMessages[4].ID)

	// The preview must not reorder the backend slice in place.
	assert.Equal(t, "m0", inbox[0].ID)
}

func TestDashboardService_Summary_AnyFailureFailsAll(t *testing.T) {
	svc, backend := newDashboardServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		ListProjects(gomock.Any(), gomock.Any(), true).
		Return(nil, apperrors.Upstream("backend unreachable"))
	backend.EXPECT().
		ListExperience(gomock.Any(), gomock.Any()).
		Return([]model.ExperienceEntry{}, nil).
		AnyTimes()
	backend.EXPECT().
		ListMessages(gomock.Any(), gomock.Any()).
		Return([]model.Message{}, nil).
		AnyTimes()

	_, err := svc.Summary(context.Background(), sess)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestDashboardService_Summary_PropagatesUnauthorized(t *testing.T) {
	svc, backend := newDashboardServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		ListProjects(gomock.Any(), gomock.Any(), true).
		Return(nil, apperrors.Unauthorized("Unauthorized"))
	backend.EXPECT().
		ListExperience(gomock.Any(), gomock.Any()).
		Return([]model.ExperienceEntry{}, nil).
		AnyTimes()
	backend.EXPECT().
		ListMessages(gomock.Any(), gomock.Any()).
		Return([]model.Message{}, nil).
		AnyTimes()

	_, err := svc.Summary(context.Background(), sess)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}
