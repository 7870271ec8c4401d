package ports

import "go.trai.ch/press/internal/core/domain"

// ImageStore persists the hashes of optimized images.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ImageStore interface {
	// Get retrieves the record for the root-relative image path.
	// Returns nil, nil if not found.
	Get(root, path string) (*domain.ImageRecord, error)

	// Put stores the record.
	Put(root string, record domain.ImageRecord) error
}
