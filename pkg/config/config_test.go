package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "America/Santiago", cfg.App.Timezone)
	assert.Equal(t, "0.19", cfg.Tax.VATRate.String())
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("TAX_VAT_RATE", "0.10")
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("METRICS_ENABLED", "false")
	v.Set("APP_TIMEZONE", "UTC")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "0.1", cfg.Tax.VATRate.String())
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Metrics.Enabled)
	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]string{
		"TAX_VAT_RATE": "diecinueve",
		"STORE_DRIVER": "mysql",
		"APP_TIMEZONE": "Marte/Olympus",
	}
	for key, value := range cases {
		v := viper.New()
		v.Set(key, value)
		_, err := fromViper(v)
		assert.Error(t, err, key)
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "propyme", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/propyme?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", db.ConnectionString())
}
