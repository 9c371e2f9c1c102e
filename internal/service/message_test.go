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

func newMessageServiceForTest(t *testing.T) (*MessageService, *upstreammocks.MockBackendAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	auth := NewAuthService(AuthServiceOptions{
		Backend:  backend,
		Sessions: memory.NewSessionStore(),
	})
	svc, err := NewMessageService(MessageServiceOptions{Backend: backend, Auth: auth})
	require.NoError(t, err)
	return svc, backend
}

func inboxFixture() []model.Message {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.Message{
		{ID: "m1", Name: "Ana", Email: "ana@example.com", Message: "Hola", Status: model.MessageStatusNew, CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "m2", Name: "Luis", Email: "luis@example.com", Message: "Consulta", Status: model.MessageStatusRead, CreatedAt: base},
		{ID: "m3", Name: "Marta", Email: "marta@example.com", Message: "Propuesta", Status: model.MessageStatusArchived, CreatedAt: base.Add(-time.Hour)},
	}
}

func TestMessageService_List_FiltersAndSorts(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().ListMessages(gomock.Any(), sess).Return(inboxFixture(), nil).Times(3)

	// Unfiltered: newest first.
	all, err := svc.List(context.Background(), sess, model.MessagesFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m2", all[0].ID)
	assert.Equal(t, "m3", all[1].ID)
	assert.Equal(t, "m1", all[2].ID)

	// Status filter.
	newOnly, err := svc.List(context.Background(), sess, model.MessagesFilter{Status: model.MessageStatusNew})
	require.NoError(t, err)
	require.Len(t, newOnly, 1)
	assert.Equal(t, "m1", newOnly[0].ID)

	// Query filter matches across fields.
	byQuery, err := svc.List(context.Background(), sess, model.MessagesFilter{Query: "luis"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "m2", byQuery[0].ID)
}

func TestMessageService_Get(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().ListMessages(gomock.Any(), sess).Return(inboxFixture(), nil).Times(2)

	msg, err := svc.Get(context.Background(), sess, "m2")
	require.NoError(t, err)
	assert.Equal(t, "Luis", msg.Name)

	_, err = svc.Get(context.Background(), sess, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMessageService_MarkOpened_TransitionsNewToRead(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	msg := model.Message{ID: "m1", Status: model.MessageStatusNew}
	backend.EXPECT().
		UpdateMessageStatus(gomock.Any(), sess, "m1", model.MessageStatusRead).
		Return(model.Message{ID: "m1", Status: model.MessageStatusRead}, nil)

	updated := svc.MarkOpened(context.Background(), sess, msg)
	assert.Equal(t, model.MessageStatusRead, updated.Status)
}

func TestMessageService_MarkOpened_SkipsNonNew(t *testing.T) {
	svc, _ := newMessageServiceForTest(t)
	sess := primedSession()

	// No backend expectation: read and archived messages are left alone.
	msg := model.Message{ID: "m2", Status: model.MessageStatusRead}
	updated := svc.MarkOpened(context.Background(), sess, msg)
	assert.Equal(t, model.MessageStatusRead, updated.Status)
}

func TestMessageService_MarkOpened_SwallowsBackendError(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	msg := model.Message{ID: "m1", Status: model.MessageStatusNew}
	backend.EXPECT().
		UpdateMessageStatus(gomock.Any(), sess, "m1", model.MessageStatusRead).
		Return(model.Message{}, apperrors.Upstream("backend unreachable"))

	// Failure is silent; the original message comes back unchanged.
	updated := svc.MarkOpened(context.Background(), sess, msg)
	assert.Equal(t, model.MessageStatusNew, updated.Status)
}

func TestMessageService_UpdateStatus(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		UpdateMessageStatus(gomock.Any(), sess, "m1", model.MessageStatusArchived).
		Return(model.Message{ID: "m1", Status: model.MessageStatusArchived}, nil)

	msg, err := svc.UpdateStatus(context.Background(), sess, "m1", model.MessageStatusArchived)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusArchived, msg.Status)
}

func TestMessageService_UpdateStatus_RejectsInvalidStatus(t *testing.T) {
	svc, _ := newMessageServiceForTest(t)
	_, err := svc.UpdateStatus(context.Background(), primedSession(), "m1", "bogus")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMessageService_Delete_PropagatesNotFound(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		DeleteMessage(gomock.Any(), sess, "gone").
		Return(apperrors.NotFound("message not found"))

	err := svc.Delete(context.Background(), sess, "gone")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMessageService_Submit(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().
		SubmitMessage(gomock.Any(), sess, gomock.Any()).
		Return(nil)

	err := svc.Submit(context.Background(), sess, model.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Message: "Hola",
	})
	require.NoError(t, err)
}

func TestMessageService_Submit_Invalid(t *testing.T) {
	svc, _ := newMessageServiceForTest(t)
	err := svc.Submit(context.Background(), primedSession(), model.ContactRequest{Name: "Ana"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestMessageService_UpdateStatus_PersistsRotatedCookies(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := upstreammocks.NewMockBackendAPI(ctrl)
	store := memory.NewSessionStore()
	auth := NewAuthService(AuthServiceOptions{Backend: backend, Sessions: store})
	svc, err := NewMessageService(MessageServiceOptions{Backend: backend, Auth: auth})
	require.NoError(t, err)

	sess := primedSession()
	require.NoError(t, store.Save(context.Background(), *sess))

	backend.EXPECT().
		UpdateMessageStatus(gomock.Any(), sess, "m1", model.MessageStatusArchived).
		DoAndReturn(func(_ context.Context, s *domainauth.Session, id string, _ model.MessageStatus) (model.Message, error) {
			s.SetUpstreamCookie("access_token", "refreshed-jwt")
			return model.Message{ID: id, Status: model.MessageStatusArchived}, nil
		})

	_, err = svc.UpdateStatus(context.Background(), sess, "m1", model.MessageStatusArchived)
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-jwt", stored.UpstreamCookies["access_token"])
	assert.False(t, sess.Dirty())
}

func TestMessageService_Inbox_StatsCoverUnfilteredList(t *testing.T) {
	svc, backend := newMessageServiceForTest(t)
	sess := primedSession()

	backend.EXPECT().ListMessages(gomock.Any(), sess).Return(inboxFixture(), nil)

	messages, stats, err := svc.Inbox(context.Background(), sess, model.MessagesFilter{
		Status: model.MessageStatusRead,
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m2", messages[0].ID)

	assert.Equal(t, model.MessageStats{Total: 3, New: 1, Read: 1, Archived: 1}, stats)
}
