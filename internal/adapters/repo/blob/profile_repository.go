package blob

import (
	"context"
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

const profileKey = "medical_profile"

type ProfileRepository struct {
	blobs ports.BlobStore
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(blobs ports.BlobStore) *ProfileRepository {
	return &ProfileRepository{blobs: blobs}
}

func (r *ProfileRepository) Save(ctx context.Context, profile domain.MedicalProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := profileDocument{Version: currentSchemaVersion, Profile: toProfileSchema(profile)}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode medical profile: %w", err)
	}

	if err := r.blobs.Put(ctx, profileKey, string(data)); err != nil {
		return fmt.Errorf("persist medical profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) Load(ctx context.Context) (domain.MedicalProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.MedicalProfile{}, err
	}

	data, err := r.blobs.Get(ctx, profileKey)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return domain.MedicalProfile{}, domain.ErrProfileNotFound
		}
		return domain.MedicalProfile{}, fmt.Errorf("read medical profile blob: %w", err)
	}

	var doc profileDocument
	if err := toml.Unmarshal([]byte(data), &doc); err != nil {
		return domain.MedicalProfile{}, domain.ErrProfileNotFound
	}
	if err := validateVersion(doc.Version); err != nil {
		return domain.MedicalProfile{}, domain.ErrProfileNotFound
	}

	profile := fromProfileSchema(doc.Profile)
	if profile.FullName == "" {
		return domain.MedicalProfile{}, domain.ErrProfileNotFound
	}

	return profile, nil
}
