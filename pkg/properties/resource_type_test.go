package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceType(t *testing.T) {
	for _, name := range []string{"model", "seed", "snapshot", "analysis"} {
		rt, err := ParseResourceType(name)
		require.NoError(t, err)
		assert.Equal(t, name, rt.String())
		assert.True(t, rt.Supported())
	}
}

func TestParseResourceTypeUnsupported(t *testing.T) {
	_, err := ParseResourceType("exposure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exposure")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "models", TypeModel.Plural())
	assert.Equal(t, "seeds", TypeSeed.Plural())
	assert.Equal(t, "snapshots", TypeSnapshot.Plural())
	assert.Equal(t, "analyses", TypeAnalysis.Plural())
}

func TestSupported(t *testing.T) {
	assert.False(t, ResourceType("source").Supported())
	assert.False(t, ResourceType("").Supported())
}
