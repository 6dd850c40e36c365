package forecast

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MirrorStore keeps a primary artifact store in sync with a secondary
// one. Saves go to both, but only a primary failure is fatal; loads
// fall back to the secondary when the primary has nothing.
type MirrorStore struct {
	primary   ArtifactStore
	secondary ArtifactStore
}

func NewMirrorStore(primary, secondary ArtifactStore) *MirrorStore {
	return &MirrorStore{primary: primary, secondary: secondary}
}

func (s *MirrorStore) Save(ctx context.Context, data []byte) error {
	if err := s.primary.Save(ctx, data); err != nil {
		return err
	}
	if err := s.secondary.Save(ctx, data); err != nil {
		log.Warn().Err(err).Msg("failed to mirror model artifact")
	}
	return nil
}

func (s *MirrorStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.primary.Load(ctx)
	if err == nil {
		return data, nil
	}
	return s.secondary.Load(ctx)
}
