package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: passless
  debug: true
server:
  port: 8080
  timeout_seconds: 30
modules:
  auth:
    challenge_ttl_minutes: 5
    session_ttl_hours: 720
    max_attempts: 3
    consumer_names:
      - otp_issued_delivery
ratio: 0.25
`

func TestViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "passless", cfg.GetString("app.name"))
	assert.True(t, cfg.GetBool("app.debug"))
	assert.Equal(t, 8080, cfg.GetInt("server.port"))
	assert.Equal(t, int16(3), cfg.GetInt16("modules.auth.max_attempts"))
	assert.InEpsilon(t, 0.25, cfg.GetFloat64("ratio"), 1e-9)
	assert.Equal(t, []string{"otp_issued_delivery"}, cfg.GetArray("modules.auth.consumer_names"))

	assert.Equal(t, 30*time.Second, cfg.GetSecond("server.timeout_seconds"))
	assert.Equal(t, 5*time.Minute, cfg.GetMinute("modules.auth.challenge_ttl_minutes"))
	assert.Equal(t, 720*time.Hour, cfg.GetHour("modules.auth.session_ttl_hours"))
}

func TestViperMissingKeys(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Empty(t, cfg.GetString("does.not.exist"))
	assert.Zero(t, cfg.GetInt("does.not.exist"))
	assert.Zero(t, cfg.GetSecond("does.not.exist"))
	assert.Nil(t, cfg.GetArray("does.not.exist"))
}

func TestViperClose(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)
	assert.NoError(t, cfg.Close())
}
