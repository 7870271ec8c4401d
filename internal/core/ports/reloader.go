package ports

// Reloader notifies connected browsers that build outputs changed.
//
//go:generate mockgen -source=reloader.go -destination=mocks/mock_reloader.go -package=mocks
type Reloader interface {
	// Notify broadcasts one message for the given paths, relative to the build directory.
	Notify(paths ...string)
}
