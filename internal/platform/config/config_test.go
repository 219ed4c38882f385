package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv() map[string]string {
	return map[string]string{
		"JWT_PUBLIC_KEY":  "test-public-key",
		"JWT_PRIVATE_KEY": "test-private-key",
	}
}

func TestLoadFromMap_Defaults(t *testing.T) {
	cfg, err := LoadFromMap(validEnv())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgresql", cfg.Database.Type)
	assert.Equal(t, "nuoidev", cfg.Database.Postgres.Database)
	assert.Equal(t, 10, cfg.Votes.DailyCap)
	assert.True(t, cfg.Votes.SelfVoteCheck)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 1*time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.RateLimits.Vote.Enabled)
}

func TestLoadFromMap_Overrides(t *testing.T) {
	env := validEnv()
	env["VOTE_DAILY_CAP"] = "3"
	env["VOTE_SELF_CHECK"] = "false"
	env["CACHE_BACKEND"] = "redis"
	env["REDIS_ADDRESS"] = "redis:6380"
	env["RATE_LIMIT_VOTE_DURATION"] = "30s"

	cfg, err := LoadFromMap(env)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Votes.DailyCap)
	assert.False(t, cfg.Votes.SelfVoteCheck)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6380", cfg.Cache.Redis.Address)
	assert.Equal(t, 30*time.Second, cfg.RateLimits.Vote.Duration)
}

func TestLoadFromMap_MissingKeys(t *testing.T) {
	_, err := LoadFromMap(map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_PUBLIC_KEY")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	env := validEnv()
	env["VOTE_DAILY_CAP"] = "0"
	_, err := LoadFromMap(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VOTE_DAILY_CAP")

	env = validEnv()
	env["DB_TYPE"] = "mongodb"
	_, err = LoadFromMap(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_TYPE")
}
