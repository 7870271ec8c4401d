package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/adapters/cas"
	"go.trai.ch/press/internal/adapters/fs"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports/mocks"
	"go.trai.ch/press/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root     string
	cfg      *domain.Config
	executor *fakeExecutor
	includer *mocks.MockIncluder
	minifier *mocks.MockMinifier
	sass     *mocks.MockSassCompiler
	bundler  *mocks.MockBundler
	sprites  *mocks.MockSpriteBuilder
	reloader *mocks.MockReloader
	logger   *mocks.MockLogger
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		writeFile(t, root, rel, content)
	}

	ctrl := gomock.NewController(t)
	return &fixture{
		root:     root,
		cfg:      domain.DefaultConfig(root),
		executor: &fakeExecutor{},
		includer: mocks.NewMockIncluder(ctrl),
		minifier: mocks.NewMockMinifier(ctrl),
		sass:     mocks.NewMockSassCompiler(ctrl),
		bundler:  mocks.NewMockBundler(ctrl),
		sprites:  mocks.NewMockSpriteBuilder(ctrl),
		reloader: mocks.NewMockReloader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
}

func (f *fixture) pipeline() *pipeline.Pipeline {
	return pipeline.New(f.cfg, pipeline.Deps{
		Resolver: fs.NewResolver(fs.NewWalker()),
		Hasher:   fs.NewHasher(),
		Store:    cas.NewStore(),
		Executor: f.executor,
		Includer: f.includer,
		Minifier: f.minifier,
		Sass:     f.sass,
		Bundler:  f.bundler,
		Sprites:  f.sprites,
		Reloader: f.reloader,
		Logger:   f.logger,
	})
}

func (f *fixture) abs(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(f.abs(rel))
	require.NoError(t, err)
	return string(data)
}

// tree lists every file below dir relative to the project root.
func (f *fixture) tree(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(f.abs(dir), func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		files = append(files, filepath.ToSlash(rel))
		return err
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

// fakeExecutor stands in for optipng, cjpeg and cwebp by writing a short
// output file wherever the command line names one.
type fakeExecutor struct {
	mu       sync.Mutex
	commands []domain.Command
	err      error
}

func (e *fakeExecutor) Execute(_ context.Context, cmd domain.Command) error {
	e.mu.Lock()
	e.commands = append(e.commands, cmd)
	e.mu.Unlock()

	if e.err != nil {
		return e.err
	}
	for i, arg := range cmd.Args {
		if (arg == "-out" || arg == "-outfile" || arg == "-o") && i+1 < len(cmd.Args) {
			return os.WriteFile(cmd.Args[i+1], []byte(cmd.Name), domain.FilePerm)
		}
	}
	return nil
}

// tools returns the tool name of every command, sorted.
func (e *fakeExecutor) tools() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.commands))
	for _, c := range e.commands {
		names = append(names, c.Name)
	}
	slices.Sort(names)
	return names
}

func (e *fakeExecutor) find(name, suffix string) (domain.Command, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.commands {
		if c.Name == name && slices.ContainsFunc(c.Args, func(a string) bool { return strings.HasSuffix(a, suffix) }) {
			return c, true
		}
	}
	return domain.Command{}, false
}
