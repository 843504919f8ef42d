package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cascadebot/cascade/pkg/catalog"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversVocabulary(t *testing.T) {
	c := catalog.Default()

	for _, intent := range domain.Vocabulary {
		text, err := c.Response(intent)
		require.NoError(t, err, "missing response for %q", intent)
		assert.NotEmpty(t, text)
	}
	assert.Len(t, c.Labels(), len(domain.Vocabulary))
}

func TestResponse_UnknownLabel(t *testing.T) {
	c := catalog.Default()

	_, err := c.Response(domain.Intent("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownIntent)

	// The unresolved sentinel is not a routable label either.
	_, err = c.Response(domain.IntentNone)
	assert.ErrorIs(t, err, domain.ErrUnknownIntent)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"setupboxdrive: \"Custom drive guide\"\n",
	), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)

	text, err := c.Response(domain.IntentSetupBoxDrive)
	require.NoError(t, err)
	assert.Equal(t, "Custom drive guide", text)

	// Untouched labels keep their stock text.
	text, err = c.Response(domain.IntentBestPractices)
	require.NoError(t, err)
	assert.Contains(t, text, "Check out this [link]")
}

func TestLoad_RejectsUnknownLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"notalabel: \"text\"\n",
	), 0o644))

	_, err := catalog.Load(path)
	assert.ErrorIs(t, err, domain.ErrUnknownIntent)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
