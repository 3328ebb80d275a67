package prompt_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/prodwriter/internal/domain"
	"github.com/phrazzld/prodwriter/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headphones() domain.ProductSpec {
	return domain.ProductSpec{
		Title:    "Wireless Headphones",
		Details:  []string{"Noise Cancellation", "Long Battery Life"},
		Audience: []domain.Audience{"Tech Savvy"},
		Tone:     domain.ToneFormal,
		Length:   domain.LengthShort,
		Keywords: []string{"bluetooth", "wireless"},
	}
}

func TestBuildContainsEveryField(t *testing.T) {
	t.Parallel()

	got, err := prompt.Default().Build(headphones())
	require.NoError(t, err)

	for _, token := range []string{
		"Wireless Headphones",
		"Noise Cancellation, Long Battery Life",
		"(Tech Savvy)",
		"Formal tone",
		"approximately 50 words",
		"bluetooth, wireless",
	} {
		assert.Contains(t, got, token)
	}
	assert.True(t, strings.HasPrefix(got, "Write a compelling product description for Wireless Headphones."))
	assert.True(t, strings.HasSuffix(got, "focus on the value proposition."))
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	b := prompt.Default()
	first, err := b.Build(headphones())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := prompt.Default().Build(headphones())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildDoesNotEscape(t *testing.T) {
	t.Parallel()

	spec := headphones()
	spec.Title = `Tom & Jerry's "Cat" <Toy>`

	got, err := prompt.Default().Build(spec)
	require.NoError(t, err)
	assert.Contains(t, got, `Tom & Jerry's "Cat" <Toy>`)
}

func TestNewBuilderFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Title}} for {{join .Audience}} in {{.Length}}"), 0o600))

	b, err := prompt.NewBuilder(path)
	require.NoError(t, err)

	got, err := b.Build(headphones())
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones for Tech Savvy in short", got)
}

func TestNewBuilderEmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	b, err := prompt.NewBuilder("")
	require.NoError(t, err)

	got, err := b.Build(headphones())
	require.NoError(t, err)
	assert.Contains(t, got, "Write a compelling product description")
}

func TestTemplateErrors(t *testing.T) {
	t.Parallel()

	_, err := prompt.NewBuilder(filepath.Join(t.TempDir(), "missing.tmpl"))
	assert.True(t, errors.Is(err, prompt.ErrTemplate))

	_, err = prompt.Parse("{{.Title")
	assert.True(t, errors.Is(err, prompt.ErrTemplate))

	b, err := prompt.Parse("{{.Price}}")
	require.NoError(t, err)
	_, err = b.Build(headphones())
	assert.True(t, errors.Is(err, prompt.ErrTemplate))
}
