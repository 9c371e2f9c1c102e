package service

import (
	"context"
	"testing"
	"time"

	"github.com/nmoreno/portfolio-ui/internal/adapters/memory"
	domainauth "github.com/nmoreno/portfolio-ui/internal/domain/auth"
	"github.com/nmoreno/portfolio-ui/internal/domain/model"
	apperrors "github.com/nmoreno/portfolio-ui/internal/errors"
	upstreammocks "github.com/nmoreno/portfolio-ui/internal/mocks/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newExperienceServiceForTest(t *testing.T) (*ExperienceService, *upstreammocks.MockBackendAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	auth := NewAuthService(AuthServiceOptions{
		Backend:  backend,
		Sessions: memory.NewSessionStore(),
	})
	svc, err := NewExperienceService(ExperienceServiceOptions{Backend: backend, Auth: auth})
	require.NoError(t, err)
	return svc, backend
}

func primedSession() *domainauth.Session {
	return &domainauth.Session{
		ID:         "s1",
		UserID:     "u1",
		Role:       domainauth.RoleAdmin,
		CSRFToken:  "tok",
		CSRFPrimed: true,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestExperienceService_List_Sorted(t *testing.T) {
	svc, backend := newExperienceServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().ListExperience(gomock.Any(), sess).Return([]model.ExperienceEntry{
		{ID: "b", Order: 2, StartDate: "2020-01"},
		{ID: "a", Order: 1, StartDate: "2022-01"},
		{ID: "c", Order: 1, StartDate: "2023-01"},
	}, nil)

	entries, err := svc.List(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "a", entries[1].ID)
	assert.Equal(t, "b", entries[2].ID)
}

func TestExperienceService_Create_ValidatesBeforeBackend(t *testing.T) {
	svc, _ := newExperienceServiceForTest(t)
	sess := primedSession()

	// No backend expectation: an invalid request never leaves the service.
	_, err := svc.Create(context.Background(), sess, model.ExperienceRequest{Company: "Acme"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExperienceService_Create_PrimesCSRF(t *testing.T) {
	svc, backend := newExperienceServiceForTest(t)
	sess := &domainauth.Session{ID: "s1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	gomock.InOrder(
		backend.EXPECT().
			FetchCSRF(gomock.Any(), sess).
			DoAndReturn(func(_ context.Context, s *domainauth.Session) error {
				s.CSRFToken = "tok"
				s.CSRFPrimed = true
				return nil
			}),
		backend.EXPECT().
			CreateExperience(gomock.Any(), sess, gomock.Any()).
			Return(model.ExperienceEntry{ID: "e1", Role: "Engineer", Company: "Acme"}, nil),
	)

	entry, err := svc.Create(context.Background(), sess, model.ExperienceRequest{
		Role:      "Engineer",
		Company:   "Acme",
		StartDate: "2021-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", entry.ID)
}

func TestExperienceService_Update_RequiresID(t *testing.T) {
	svc, _ := newExperienceServiceForTest(t)
	_, err := svc.Update(context.Background(), primedSession(), "", model.ExperienceRequest{
		Role: "Engineer", Company: "Acme",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExperienceService_Update_PropagatesNotFound(t *testing.T) {
	svc, backend := newExperienceServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		UpdateExperience(gomock.Any(), sess, "gone", gomock.Any()).
		Return(model.ExperienceEntry{}, apperrors.NotFound("entry not found"))

	_, err := svc.Update(context.Background(), sess, "gone", model.ExperienceRequest{
		Role: "Engineer", Company: "Acme", StartDate: "2021-01",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExperienceService_Delete(t *testing.T) {
	svc, backend := newExperienceServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().DeleteExperience(gomock.Any(), sess, "e1").Return(nil)
	require.NoError(t, svc.Delete(context.Background(), sess, "e1"))

	err := svc.Delete(context.Background(), sess, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestExperienceService_Create_PersistsRotatedCookies(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	store := memory.NewSessionStore()
	auth := NewAuthService(AuthServiceOptions{Backend: backend, Sessions: store})
	svc, err := NewExperienceService(ExperienceServiceOptions{Backend: backend, Auth: auth})
	require.NoError(t, err)

	sess := primedSession()
	require.NoError(t, store.Save(context.Background(), *sess))

	backend.EXPECT().
		CreateExperience(gomock.Any(), sess, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domainauth.Session, _ model.ExperienceRequest) (model.ExperienceEntry, error) {
			s.SetUpstreamCookie("access_token", "rotated-jwt")
			return model.ExperienceEntry{ID: "e1"}, nil
		})

	_, err = svc.Create(context.Background(), sess, model.ExperienceRequest{
		Role: "Engineer", Company: "Acme", StartDate: "2021-01",
	})
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated-jwt", stored.UpstreamCookies["access_token"])
	assert.False(t, sess.Dirty(), "persisted state should be marked clean")
}

func TestExperienceService_List_LeavesUntouchedSessionAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	store := memory.NewSessionStore()
	auth := NewAuthService(AuthServiceOptions{Backend: backend, Sessions: store})
	svc, err := NewExperienceService(ExperienceServiceOptions{Backend: backend, Auth: auth})
	require.NoError(t, err)

	sess := primedSession()
	backend.EXPECT().ListExperience(gomock.Any(), sess).Return(nil, nil)

	_, err = svc.List(context.Background(), sess)
	require.NoError(t, err)

	// No cookie rotation, so nothing should have been written back.
	_, err = store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, memory.ErrNotFound)
}
