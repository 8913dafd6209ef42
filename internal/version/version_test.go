package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion_DefaultValues(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev", Commit)
	assert.Equal(t, "unknown", BuildTime)
}

func TestGet(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })
	Version = "v1.2.0"

	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "v1.2.0 (dev, built unknown)", info.String())
}
