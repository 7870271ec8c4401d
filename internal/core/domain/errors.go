package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when registering a task under a name that is already taken.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrTaskPanicked is returned when a task panics instead of returning an error.
	ErrTaskPanicked = zerr.New("task panicked")

	// ErrTaskExecutionFailed marks the failure of a single task invocation.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrBuildExecutionFailed is returned when a run of the requested tasks fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidLayout is returned when the source or output directory is unusable.
	ErrInvalidLayout = zerr.New("invalid source or output directory")

	// ErrInvalidPort is returned when the dev server port is out of range.
	ErrInvalidPort = zerr.New("invalid server port")

	// ErrInvalidDebounce is returned when the watch debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid watch debounce")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrInvalidPattern is returned when a glob pattern cannot be compiled.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrInputResolutionFailed is returned when walking for inputs fails.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileWriteFailed is returned when an output file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrCleanFailed is returned when the build directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean build directory")

	// ErrIncludeFailed is returned when an HTML include cannot be resolved.
	ErrIncludeFailed = zerr.New("failed to resolve include")

	// ErrIncludeMissingSrc is returned when an include element has no src attribute.
	ErrIncludeMissingSrc = zerr.New("include element is missing a src attribute")

	// ErrIncludeOutsideRoot is returned when an include points outside the project root.
	ErrIncludeOutsideRoot = zerr.New("include path is outside project root")

	// ErrIncludeTooDeep is returned when includes nest deeper than MaxIncludeDepth.
	ErrIncludeTooDeep = zerr.New("includes nested too deeply")

	// ErrMinifyFailed is returned when minification fails.
	ErrMinifyFailed = zerr.New("failed to minify")

	// ErrSassUnavailable is returned when the Sass compiler cannot be started.
	ErrSassUnavailable = zerr.New("sass compiler is not available")

	// ErrSassCompileFailed is returned when Sass reports a compilation error.
	ErrSassCompileFailed = zerr.New("sass compilation failed")

	// ErrBundleFailed is returned when bundling styles or scripts fails.
	ErrBundleFailed = zerr.New("failed to bundle")

	// ErrSpriteFailed is returned when the SVG sprite cannot be built.
	ErrSpriteFailed = zerr.New("failed to build sprite")

	// ErrCommandFailed is returned when an external tool exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrImageOptimizeFailed is returned when an image cannot be optimized.
	ErrImageOptimizeFailed = zerr.New("failed to optimize image")

	// ErrStoreCreateFailed is returned when the image store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create image store directory")

	// ErrStoreReadFailed is returned when an image record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read image record")

	// ErrStoreUnmarshalFailed is returned when an image record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal image record")

	// ErrStoreMarshalFailed is returned when an image record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal image record")

	// ErrStoreWriteFailed is returned when an image record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write image record")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrServerListenFailed is returned when the dev server cannot bind its address.
	ErrServerListenFailed = zerr.New("failed to start dev server")
)
