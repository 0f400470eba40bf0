package blob

import (
	"context"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const sessionKey = "emergency_session"

// SessionRepository persists the single active-session slot through a blob
// store. Corrupt or terminal persisted sessions read back as "no session":
// the emergency flow fails open toward detection, never toward blocking the
// user behind a parse error.
type SessionRepository struct {
	blobs ports.BlobStore
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(blobs ports.BlobStore) *SessionRepository {
	return &SessionRepository{blobs: blobs}
}

func (r *SessionRepository) Save(ctx context.Context, session domain.EmergencySession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := sessionDocument{Version: currentSchemaVersion, Session: toSessionSchema(session)}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session %q: %w", session.ID, err)
	}

	if err := r.blobs.Put(ctx, sessionKey, string(data)); err != nil {
		return fmt.Errorf("persist session %q: %w", session.ID, err)
	}

	return nil
}

func (r *SessionRepository) Load(ctx context.Context) (domain.EmergencySession, error) {
	if err := ctx.Err(); err != nil {
		return domain.EmergencySession{}, err
	}

	data, err := r.blobs.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return domain.EmergencySession{}, domain.ErrNoActiveEmergency
		}
		return domain.EmergencySession{}, fmt.Errorf("read session blob: %w", err)
	}

	var doc sessionDocument
	if err := toml.Unmarshal([]byte(data), &doc); err != nil {
		return domain.EmergencySession{}, domain.ErrNoActiveEmergency
	}
	if err := validateVersion(doc.Version); err != nil {
		return domain.EmergencySession{}, domain.ErrNoActiveEmergency
	}

	session := fromSessionSchema(doc.Session)
	if session.ID == "" || !session.Status.Valid() || session.Status.Terminal() {
		return domain.EmergencySession{}, domain.ErrNoActiveEmergency
	}

	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.blobs.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session blob: %w", err)
	}

	return nil
}
