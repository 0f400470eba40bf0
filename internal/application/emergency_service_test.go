package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avomont/lifeline/internal/application"
	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports/mocks"
)

// stepClock advances one second per reading so session IDs and audit
// timestamps stay distinct within a test.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type serviceMocks struct {
	sessions *mocks.MockSessionRepository
	profiles *mocks.MockProfileRepository
	audit    *mocks.MockAuditLog
	location *mocks.MockLocationProvider
	notifier *mocks.MockContactNotifier
}

func newService(t *testing.T, opts application.Options) (*application.EmergencyService, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		sessions: mocks.NewMockSessionRepository(t),
		profiles: mocks.NewMockProfileRepository(t),
		audit:    mocks.NewMockAuditLog(t),
		location: mocks.NewMockLocationProvider(t),
		notifier: mocks.NewMockContactNotifier(t),
	}
	m.audit.EXPECT().Append(mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := application.NewEmergencyService(m.sessions, m.profiles, m.audit, m.location, m.notifier, newStepClock(), opts)
	return svc, m
}

func testProfile() domain.MedicalProfile {
	return domain.MedicalProfile{
		ID:       "profile-1",
		FullName: "Dana Whitfield",
		Contacts: []domain.EmergencyContact{
			{Name: "Ana Whitfield", Phone: "+15550100", Relation: "spouse", IsPrimary: true},
			{Name: "Luis Ortega", Phone: "+15550101", Relation: "neighbor"},
		},
	}
}

func sessionAction(t *testing.T, session domain.EmergencySession, action domain.AuditAction) domain.AuditEntry {
	t.Helper()
	for _, entry := range session.AuditLog {
		if entry.Action == action {
			return entry
		}
	}
	t.Fatalf("session audit log has no %q entry", action)
	return domain.AuditEntry{}
}

func TestTriggerStartsConfirmationSession(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	var saved domain.EmergencySession
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.EmergencySession)
	}).Return(nil)

	session, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmation, session.Status)
	assert.Equal(t, "profile-1", session.MedicalProfileID)
	assert.NotEmpty(t, session.ID)
	sessionAction(t, session, domain.ActionEmergencyInitiated)
	assert.Equal(t, session.ID, saved.ID)

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)
}

func TestTriggerWithoutProfile(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(domain.MedicalProfile{}, domain.ErrProfileNotFound)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	session, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, session.MedicalProfileID)
}

func TestTriggerRejectsActiveEmergency(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil).Once()
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	_, err = svc.Trigger(context.Background())
	require.ErrorIs(t, err, domain.ErrEmergencyActive)
}

func TestTriggerPersistFailureKeepsSlot(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	session, err := svc.Trigger(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "persist emergency session")

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.ID, active.ID)
}

func TestConfirmWithLocation(t *testing.T) {
	svc, m := newService(t, application.Options{})

	fix := domain.LocationFix{Latitude: 48.8584, Longitude: 2.2945, Accuracy: 12, Timestamp: time.Date(2026, 3, 1, 9, 31, 0, 0, time.UTC)}
	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(fix, nil)

	var notifiedFix *domain.LocationFix
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		notifiedFix, _ = args.Get(3).(*domain.LocationFix)
	}).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.LocationObtained, result.LocationOutcome)
	assert.Contains(t, result.Announcement, "with your location")
	assert.Equal(t, domain.StatusInProgress, result.Session.Status)
	require.NotNil(t, result.Session.Location)
	assert.Equal(t, fix, *result.Session.Location)
	require.NotNil(t, notifiedFix)
	assert.Equal(t, fix, *notifiedFix)
	assert.Equal(t, []string{"Ana Whitfield"}, result.ContactsNotified)
	assert.Equal(t, []string{"Ana Whitfield"}, result.Session.ContactsNotified)

	confirmed := sessionAction(t, result.Session, domain.ActionEmergencyConfirmed)
	assert.Equal(t, "Location: obtained", confirmed.Details)
	notified := sessionAction(t, result.Session, domain.ActionContactsNotified)
	assert.Contains(t, notified.Details, "Ana Whitfield")
}

func TestConfirmPermissionDenied(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{}, fmt.Errorf("termux: %w", domain.ErrLocationPermissionDenied))
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, (*domain.LocationFix)(nil)).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.LocationDenied, result.LocationOutcome)
	assert.Contains(t, result.Announcement, "Location sharing is off")
	assert.Nil(t, result.Session.Location)
	confirmed := sessionAction(t, result.Session, domain.ActionEmergencyConfirmed)
	assert.Equal(t, "Location: permission denied", confirmed.Details)
}

func TestConfirmLocationTimeout(t *testing.T) {
	svc, m := newService(t, application.Options{LocationTimeout: 20 * time.Millisecond})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(domain.LocationFix{}, context.DeadlineExceeded)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, (*domain.LocationFix)(nil)).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.LocationTimedOut, result.LocationOutcome)
	assert.Contains(t, result.Announcement, "could not be determined")
	confirmed := sessionAction(t, result.Session, domain.ActionEmergencyConfirmed)
	assert.Equal(t, "Location: timeout", confirmed.Details)
}

func TestConfirmLocationUnavailable(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{}, errors.New("gps hardware offline"))
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, (*domain.LocationFix)(nil)).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, application.LocationFailed, result.LocationOutcome)
	confirmed := sessionAction(t, result.Session, domain.ActionEmergencyConfirmed)
	assert.Equal(t, "Location: unavailable", confirmed.Details)
}

func TestConfirmNotifierFailureDoesNotBlockTransition(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{Latitude: 1, Longitude: 2}, nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("sms gateway unreachable"))

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, result.Session.Status)
	assert.Empty(t, result.ContactsNotified)
	failed := sessionAction(t, result.Session, domain.ActionContactNotificationFailed)
	assert.Contains(t, failed.Details, "sms gateway unreachable")
}

func TestConfirmWithoutProfileSkipsNotification(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.profiles.EXPECT().Load(mock.Anything).Return(domain.MedicalProfile{}, domain.ErrProfileNotFound)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{Latitude: 1, Longitude: 2}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.ContactsNotified)
}

func TestConfirmRequiresConfirmationState(t *testing.T) {
	svc, m := newService(t, application.Options{})

	_, err := svc.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveEmergency)

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{Latitude: 1, Longitude: 2}, nil).Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{"Ana Whitfield"}, nil).Once()

	_, err = svc.Trigger(context.Background())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestLifecycleThroughFollowUp(t *testing.T) {
	svc, m := newService(t, application.Options{GracePeriod: time.Hour})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	var statuses []domain.EmergencyStatus
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		statuses = append(statuses, args.Get(1).(domain.EmergencySession).Status)
	}).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{Latitude: 1, Longitude: 2}, nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background())
	require.NoError(t, err)

	session, err := svc.FollowUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFollowUp, session.Status)

	session, err = svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)

	assert.Equal(t, []domain.EmergencyStatus{
		domain.StatusConfirmation,
		domain.StatusInProgress,
		domain.StatusFollowUp,
		domain.StatusCompleted,
	}, statuses)

	sessionAction(t, session, domain.ActionEmergencyFollowUp)
	sessionAction(t, session, domain.ActionEmergencyCompleted)
}

func TestResolveDirectlyFromInProgress(t *testing.T) {
	svc, m := newService(t, application.Options{GracePeriod: time.Hour})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.location.EXPECT().Current(mock.Anything).Return(domain.LocationFix{Latitude: 1, Longitude: 2}, nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{"Ana Whitfield"}, nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background())
	require.NoError(t, err)

	session, err := svc.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, session.Status)
}

func TestFollowUpRequiresInProgress(t *testing.T) {
	svc, m := newService(t, application.Options{})

	_, err := svc.FollowUp(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveEmergency)

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	_, err = svc.Trigger(context.Background())
	require.NoError(t, err)

	_, err = svc.FollowUp(context.Background())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelFromConfirmationStaysInspectable(t *testing.T) {
	svc, m := newService(t, application.Options{GracePeriod: time.Hour})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	session, err := svc.Cancel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, session.Status)
	sessionAction(t, session, domain.ActionEmergencyCancelled)

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, active.Status)
}

func TestGracePeriodClearsSlot(t *testing.T) {
	svc, m := newService(t, application.Options{GracePeriod: 10 * time.Millisecond})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)
	m.sessions.EXPECT().Delete(mock.Anything).Return(nil)

	_, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := svc.Active(context.Background())
		return errors.Is(err, domain.ErrNoActiveEmergency)
	}, time.Second, 5*time.Millisecond)
}

func TestNewTriggerAllowedAfterTerminalSession(t *testing.T) {
	svc, m := newService(t, application.Options{GracePeriod: time.Hour})

	m.profiles.EXPECT().Load(mock.Anything).Return(testProfile(), nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	first, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background())
	require.NoError(t, err)

	second, err := svc.Trigger(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.StatusConfirmation, second.Status)
}

func TestResumeReloadsSession(t *testing.T) {
	svc, m := newService(t, application.Options{})

	persisted := domain.NewEmergencySession(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), "profile-1")
	persisted.Status = domain.StatusInProgress
	m.sessions.EXPECT().Load(mock.Anything).Return(persisted, nil)
	m.sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.Resume(context.Background()))

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, persisted.ID, active.ID)

	session, err := svc.FollowUp(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFollowUp, session.Status)
}

func TestResumeClearsLingeringBlob(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.sessions.EXPECT().Load(mock.Anything).Return(domain.EmergencySession{}, domain.ErrNoActiveEmergency)
	m.sessions.EXPECT().Delete(mock.Anything).Return(nil)

	require.NoError(t, svc.Resume(context.Background()))

	_, err := svc.Active(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveEmergency)
}

func TestResumeSurfacesStorageFailure(t *testing.T) {
	svc, m := newService(t, application.Options{})

	m.sessions.EXPECT().Load(mock.Anything).Return(domain.EmergencySession{}, errors.New("decrypt blob: bad key"))

	err := svc.Resume(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "reload emergency session")
}
