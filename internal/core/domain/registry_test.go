package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/press/internal/core/domain"
)

func TestRegistry_AddAndLookup(t *testing.T) {
	r := domain.NewRegistry()
	html := domain.NewFunc("html", nil)

	require.NoError(t, r.Add(html, "Build HTML pages"))

	got, err := r.Lookup("html")
	require.NoError(t, err)
	assert.Same(t, html, got)
}

func TestRegistry_AddDuplicate(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Add(domain.NewFunc("html", nil), ""))

	err := r.Add(domain.NewFunc("html", nil), "")
	require.ErrorContains(t, err, domain.ErrTaskAlreadyExists.Error())
}

func TestRegistry_LookupMissing(t *testing.T) {
	_, err := domain.NewRegistry().Lookup("nope")
	require.ErrorContains(t, err, domain.ErrTaskNotFound.Error())
}

func TestRegistry_InfosSorted(t *testing.T) {
	r := domain.NewRegistry()
	require.NoError(t, r.Add(domain.NewFunc("styles", nil), "Compile styles"))
	require.NoError(t, r.Add(domain.NewFunc("clean", nil), "Remove build"))
	require.NoError(t, r.Add(domain.NewFunc("html", nil), "Build HTML"))

	assert.Equal(t, []string{"clean", "html", "styles"}, r.Names())
	assert.Equal(t, []domain.TaskInfo{
		{Name: "clean", Description: "Remove build"},
		{Name: "html", Description: "Build HTML"},
		{Name: "styles", Description: "Compile styles"},
	}, r.Infos())
}
