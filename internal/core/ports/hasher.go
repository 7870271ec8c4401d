package ports

// Hasher computes content hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the xxhash of the file at path.
	ComputeFileHash(path string) (uint64, error)
}
