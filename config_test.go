package streamjson

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithMaxStringLen(10),
		WithNoRootType(NoNumberAsRoot),
		WithNoRootType(NoBoolAsRoot),
		WithKeyUTF8Mode(UTF8Fix),
	)
	require.Equal(t, 10, cfg.MaxStringLen)
	require.NotZero(t, cfg.RootFlags&NoNumberAsRoot)
	require.NotZero(t, cfg.RootFlags&NoBoolAsRoot)
	require.Zero(t, cfg.RootFlags&NoStringAsRoot)
	require.Equal(t, UTF8Fix, cfg.KeyUTF8)
}

func TestLoadConfigFromEnvOverridesLimits(t *testing.T) {
	t.Setenv("JSONPARSE_MAX_STRING_LEN", "99")
	base := NewConfig(WithMaxStringLen(10), WithMaxKeyLen(5))

	cfg, err := LoadConfigFromEnv(base)
	require.NoError(t, err)
	require.Equal(t, 99, cfg.MaxStringLen)
	require.Equal(t, 5, cfg.MaxKeyLen)
	os.Unsetenv("JSONPARSE_MAX_STRING_LEN")
}
