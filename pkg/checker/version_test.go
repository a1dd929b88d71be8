package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"6.4", true},
		{"6.4-SNAPSHOT", true},
		{"5.0", true},
		{"5.0-SNAPSHOT", true},
		{"4.9.1", false},
		{"3.2", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := supportedVersion(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := supportedVersion("latest")
	assert.Error(t, err)
}
