package storage

import "context"

// ArtifactStore pins an ObjectStorage to a single object key. It lets the
// forecast model persist its serialized parameters to object storage
// without knowing anything about buckets or keys.
type ArtifactStore struct {
	backend ObjectStorage
	key     string
}

func NewArtifactStore(backend ObjectStorage, key string) *ArtifactStore {
	return &ArtifactStore{backend: backend, key: key}
}

func (s *ArtifactStore) Save(ctx context.Context, data []byte) error {
	return s.backend.UploadObject(ctx, s.key, data)
}

func (s *ArtifactStore) Load(ctx context.Context) ([]byte, error) {
	return s.backend.DownloadObject(ctx, s.key)
}
