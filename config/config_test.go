package config

import (
	"path/filepath"
	"testing"
	"time"

	C "github.com/suffixlab/suffixd/constant"
	"github.com/suffixlab/suffixd/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, log.INFO, cfg.General.LogLevel)
	assert.Empty(t, cfg.General.LogFile)
	assert.Equal(t, "127.0.0.1:9091", cfg.General.ExternalController)
	assert.Equal(t, DefaultListURL, cfg.SuffixList.URL)
	assert.Equal(t, 24*time.Hour, cfg.SuffixList.Interval)
	assert.False(t, cfg.SuffixList.IncludePrivate)
	assert.NotEmpty(t, cfg.SuffixList.Path)
}

func TestParse_Override(t *testing.T) {
	cfg, err := Parse([]byte(`
log-level: debug
log-file: suffixd.log
external-controller: ":8080"
secret: hunter2
suffix-list:
  url: https://example.com/psl.dat
  interval: 3600
  include-private: true
`))
	require.NoError(t, err)

	assert.Equal(t, log.DEBUG, cfg.General.LogLevel)
	assert.Equal(t, C.Path.Resolve("suffixd.log"), cfg.General.LogFile)
	assert.True(t, filepath.IsAbs(cfg.General.LogFile))
	assert.Equal(t, ":8080", cfg.General.ExternalController)
	assert.Equal(t, "hunter2", cfg.General.Secret)
	assert.Equal(t, "https://example.com/psl.dat", cfg.SuffixList.URL)
	assert.Equal(t, time.Hour, cfg.SuffixList.Interval)
	assert.True(t, cfg.SuffixList.IncludePrivate)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("log-level: shout\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("suffix-list:\n  interval: -1\n"))
	assert.Error(t, err)
}
