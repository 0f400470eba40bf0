package blob

import (
	"context"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const auditKey = "audit_log"

// AuditLogRepository keeps the bounded activity trail. An unreadable
// persisted log reads back as empty rather than failing the append.
type AuditLogRepository struct {
	blobs ports.BlobStore
	limit int
}

var _ ports.AuditLog = (*AuditLogRepository)(nil)

func NewAuditLogRepository(blobs ports.BlobStore) *AuditLogRepository {
	return &AuditLogRepository{blobs: blobs, limit: domain.MaxAuditEntries}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := r.read(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, toAuditEntrySchema(entry))
	if len(entries) > r.limit {
		entries = entries[len(entries)-r.limit:]
	}

	return r.write(ctx, entries)
}

func (r *AuditLogRepository) Entries(ctx context.Context) ([]domain.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AuditEntry, 0, len(encoded))
	for _, entry := range encoded {
		entries = append(entries, fromAuditEntrySchema(entry))
	}

	return entries, nil
}

// Clear wipes the trail. The wipe itself is not logged: logging it would
// recreate the log it just removed.
func (r *AuditLogRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.blobs.Delete(ctx, auditKey); err != nil {
		return fmt.Errorf("clear audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) read(ctx context.Context) ([]auditEntrySchema, error) {
	data, err := r.blobs.Get(ctx, auditKey)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log blob: %w", err)
	}

	var doc auditDocument
	if err := toml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, nil
	}
	if err := validateVersion(doc.Version); err != nil {
		return nil, nil
	}

	return doc.Entries, nil
}

func (r *AuditLogRepository) write(ctx context.Context, entries []auditEntrySchema) error {
	doc := auditDocument{Version: currentSchemaVersion, Entries: entries}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode audit log: %w", err)
	}

	if err := r.blobs.Put(ctx, auditKey, string(data)); err != nil {
		return fmt.Errorf("persist audit log: %w", err)
	}

	return nil
}
