package ports

// InputResolver expands glob patterns into files.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type InputResolver interface {
	// ResolveInputs returns the sorted, de-duplicated files under root matching any of
	// the slash-separated patterns, as root-relative slash paths. No match is not an error.
	ResolveInputs(patterns []string, root string) ([]string, error)
}
