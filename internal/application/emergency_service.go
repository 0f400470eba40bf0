package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const (
	DefaultLocationTimeout = 5 * time.Second
	DefaultGracePeriod     = 3 * time.Second
)

// LocationOutcome classifies what the location race produced during the
// confirm transition.
type LocationOutcome string

const (
	LocationObtained LocationOutcome = "obtained"
	LocationDenied   LocationOutcome = "permission denied"
	LocationTimedOut LocationOutcome = "timeout"
	LocationFailed   LocationOutcome = "unavailable"
)

// Detail is the audit-trail form of the outcome.
func (o LocationOutcome) Detail() string {
	return "Location: " + string(o)
}

// Announcement is the user-facing message for the outcome. Timeout and
// other failures share one message; obtained and denied each get their own.
func (o LocationOutcome) Announcement() string {
	switch o {
	case LocationObtained:
		return "Emergency confirmed. Contacts are being notified with your location."
	case LocationDenied:
		return "Emergency confirmed. Location sharing is off, so contacts are notified without it."
	default:
		return "Emergency confirmed. Your location could not be determined in time."
	}
}

type ConfirmResult struct {
	Session          domain.EmergencySession
	LocationOutcome  LocationOutcome
	Announcement     string
	ContactsNotified []string
}

type Options struct {
	LocationTimeout time.Duration
	GracePeriod     time.Duration
}

// EmergencyService drives the emergency session lifecycle. It is the single
// writer of the active-session slot: all mutation goes through its methods,
// and every completed transition has been persisted (or its persistence
// failure surfaced) before the method returns.
type EmergencyService struct {
	mu         sync.Mutex
	active     *domain.EmergencySession
	clearTimer *time.Timer

	sessions ports.SessionRepository
	profiles ports.ProfileRepository
	audit    ports.AuditLog
	location ports.LocationProvider
	notifier ports.ContactNotifier
	clock    ports.Clock

	locationTimeout time.Duration
	gracePeriod     time.Duration
}

func NewEmergencyService(
	sessions ports.SessionRepository,
	profiles ports.ProfileRepository,
	audit ports.AuditLog,
	location ports.LocationProvider,
	notifier ports.ContactNotifier,
	clock ports.Clock,
	opts Options,
) *EmergencyService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if opts.LocationTimeout <= 0 {
		opts.LocationTimeout = DefaultLocationTimeout
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}

	return &EmergencyService{
		sessions:        sessions,
		profiles:        profiles,
		audit:           audit,
		location:        location,
		notifier:        notifier,
		clock:           clock,
		locationTimeout: opts.LocationTimeout,
		gracePeriod:     opts.GracePeriod,
	}
}

// Resume reloads a persisted non-terminal session into the slot. Terminal,
// corrupt, or absent persisted sessions leave the slot empty, and any
// lingering blob is cleared so the next episode starts clean.
func (s *EmergencyService) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveEmergency) {
			_ = s.sessions.Delete(ctx)
			s.active = nil
			return nil
		}
		return fmt.Errorf("reload emergency session: %w", err)
	}

	s.active = &session
	return nil
}

// Trigger starts a new emergency episode: detection -> confirmation. A
// non-terminal session already in the slot rejects the trigger; an active
// emergency is never silently overwritten.
func (s *EmergencyService) Trigger(ctx context.Context) (domain.EmergencySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.Active() {
		return domain.EmergencySession{}, domain.ErrEmergencyActive
	}

	profileID := ""
	if profile, err := s.profiles.Load(ctx); err == nil {
		profileID = profile.ID
	}

	session := domain.NewEmergencySession(s.clock.Now(), profileID)
	s.active = &session
	s.record(ctx, domain.ActionEmergencyInitiated, "")

	if err := s.persistLocked(ctx); err != nil {
		return s.active.Clone(), err
	}

	return s.active.Clone(), nil
}

// Confirm runs confirmation -> in_progress. The location fetch races a
// bounded timeout and contact notification is attempted with whatever fix
// resulted; neither failure blocks the transition. Only a persistence
// failure surfaces, and even then the in-memory transition is kept.
func (s *EmergencyService) Confirm(ctx context.Context) (ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ConfirmResult{}, domain.ErrNoActiveEmergency
	}
	if !s.active.Status.CanTransitionTo(domain.StatusInProgress) {
		return ConfirmResult{}, fmt.Errorf("%s -> %s: %w", s.active.Status, domain.StatusInProgress, domain.ErrInvalidTransition)
	}

	fix, outcome := s.fetchLocation(ctx)
	s.active.Location = fix
	s.active.Status = domain.StatusInProgress
	s.record(ctx, domain.ActionEmergencyConfirmed, outcome.Detail())

	notified := s.notifyContacts(ctx, fix)

	result := ConfirmResult{
		LocationOutcome:  outcome,
		Announcement:     outcome.Announcement(),
		ContactsNotified: notified,
	}

	err := s.persistLocked(ctx)
	result.Session = s.active.Clone()
	return result, err
}

// FollowUp runs in_progress -> follow_up.
func (s *EmergencyService) FollowUp(ctx context.Context) (domain.EmergencySession, error) {
	return s.transition(ctx, domain.StatusFollowUp)
}

// Resolve completes the emergency, from follow_up or directly from
// in_progress.
func (s *EmergencyService) Resolve(ctx context.Context) (domain.EmergencySession, error) {
	return s.transition(ctx, domain.StatusCompleted)
}

// Cancel aborts the emergency from any non-terminal state.
func (s *EmergencyService) Cancel(ctx context.Context) (domain.EmergencySession, error) {
	return s.transition(ctx, domain.StatusCancelled)
}

// Active returns the session currently in the slot, terminal or not. A
// just-resolved session stays inspectable here until the grace period
// clears it.
func (s *EmergencyService) Active(ctx context.Context) (domain.EmergencySession, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmergencySession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return domain.EmergencySession{}, domain.ErrNoActiveEmergency
	}

	return s.active.Clone(), nil
}

func (s *EmergencyService) transition(ctx context.Context, next domain.EmergencyStatus) (domain.EmergencySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || !s.active.Active() {
		return domain.EmergencySession{}, domain.ErrNoActiveEmergency
	}
	if !s.active.Status.CanTransitionTo(next) {
		return s.active.Clone(), fmt.Errorf("%s -> %s: %w", s.active.Status, next, domain.ErrInvalidTransition)
	}

	s.active.Status = next
	s.record(ctx, domain.ActionForStatus(next), "")

	err := s.persistLocked(ctx)
	if next.Terminal() {
		s.scheduleClearLocked()
	}

	return s.active.Clone(), err
}

// fetchLocation races the provider against the configured timeout. A late
// result is discarded, not awaited; the underlying platform call is only
// signalled through ctx, never forcibly aborted.
func (s *EmergencyService) fetchLocation(ctx context.Context) (*domain.LocationFix, LocationOutcome) {
	lctx, cancel := context.WithTimeout(ctx, s.locationTimeout)
	defer cancel()

	type locationResult struct {
		fix domain.LocationFix
		err error
	}
	results := make(chan locationResult, 1)
	go func() {
		fix, err := s.location.Current(lctx)
		results <- locationResult{fix: fix, err: err}
	}()

	select {
	case res := <-results:
		switch {
		case res.err == nil:
			fix := res.fix
			if fix.Timestamp.IsZero() {
				fix.Timestamp = s.clock.Now()
			}
			return &fix, LocationObtained
		case errors.Is(res.err, domain.ErrLocationPermissionDenied):
			return nil, LocationDenied
		case errors.Is(res.err, context.DeadlineExceeded):
			return nil, LocationTimedOut
		default:
			return nil, LocationFailed
		}
	case <-lctx.Done():
		if errors.Is(lctx.Err(), context.DeadlineExceeded) {
			return nil, LocationTimedOut
		}
		return nil, LocationFailed
	}
}

func (s *EmergencyService) notifyContacts(ctx context.Context, fix *domain.LocationFix) []string {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil
	}

	names, err := s.notifier.Notify(ctx, profile, *s.active, fix)
	if err != nil {
		s.record(ctx, domain.ActionContactNotificationFailed, err.Error())
	}
	if len(names) == 0 {
		if err == nil {
			s.record(ctx, domain.ActionContactNotificationFailed, "no contacts reached")
		}
		return nil
	}

	s.active.ContactsNotified = append(s.active.ContactsNotified, names...)
	s.record(ctx, domain.ActionContactsNotified, "Notified: "+strings.Join(names, ", "))
	return names
}

// record appends the entry to both the session's embedded trail and the
// global audit log. The global append is best-effort: an audit failure
// never fails the transition it describes.
func (s *EmergencyService) record(ctx context.Context, action domain.AuditAction, details string) {
	entry := domain.AuditEntry{
		Timestamp: s.clock.Now(),
		Action:    action,
		Details:   details,
	}
	s.active.Record(entry)
	s.auditBestEffort(ctx, entry)
}

func (s *EmergencyService) auditBestEffort(ctx context.Context, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Append(ctx, entry)
}

func (s *EmergencyService) persistLocked(ctx context.Context) error {
	if err := s.sessions.Save(ctx, *s.active); err != nil {
		return fmt.Errorf("persist emergency session: %w", err)
	}

	s.auditBestEffort(ctx, domain.AuditEntry{
		Timestamp: s.clock.Now(),
		Action:    domain.ActionSessionSaved,
		Details:   fmt.Sprintf("session %s status %s", s.active.ID, s.active.Status),
	})

	return nil
}

func (s *EmergencyService) scheduleClearLocked() {
	id := s.active.ID
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(s.gracePeriod, func() {
		s.clearSlot(id)
	})
}

// clearSlot empties the active-session slot after the grace period, but only
// if the same terminal session still occupies it.
func (s *EmergencyService) clearSlot(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.ID != id || s.active.Active() {
		return
	}

	ctx := context.Background()
	_ = s.sessions.Delete(ctx)
	s.auditBestEffort(ctx, domain.AuditEntry{
		Timestamp: s.clock.Now(),
		Action:    domain.ActionSessionCleared,
		Details:   "session " + id,
	})
	s.active = nil
}
