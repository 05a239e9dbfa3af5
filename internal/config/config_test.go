package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap is a LookupFunc over a fixed set of variables.
func envMap(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Upload:   UploadConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second, Timeout: time.Minute},
		Pipeline: PipelineConfig{DefaultProfile: "elcm-group", PreviewRows: 10},
		Rate:     RateLimitConfig{Enabled: true, RequestsPerMinute: 100, UploadLimit: 10},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(20971520), cfg.Upload.MaxFileSize)
	assert.Equal(t, 4, cfg.Upload.MaxConcurrent)
	assert.Equal(t, 2*time.Minute, cfg.Upload.Timeout)
	assert.Equal(t, "elcm-group", cfg.Pipeline.DefaultProfile)
	assert.Empty(t, cfg.Pipeline.Encoding)
	assert.Equal(t, 100, cfg.Pipeline.PreviewRows)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, 120, cfg.Rate.RequestsPerMinute)
	assert.True(t, cfg.Security.EnableCSP)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SERVER_PORT":              "9090",
		"UPLOAD_MAX_CONCURRENT":    "10",
		"PIPELINE_DEFAULT_PROFILE": "elcm-city",
		"PIPELINE_ENCODING":        " latin1 ",
		"RATE_LIMIT_ENABLED":       "false",
		"LOG_LEVEL":                "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Upload.MaxConcurrent)
	assert.Equal(t, "elcm-city", cfg.Pipeline.DefaultProfile)
	assert.Equal(t, "latin1", cfg.Pipeline.Encoding)
	assert.False(t, cfg.Rate.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"PORT": "3000"}))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)

	// The primary variable wins over the alternate.
	cfg, err = LoadFrom(envMap(map[string]string{"PORT": "3000", "SERVER_PORT": "4000"}))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_Duration(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"SERVER_READ_TIMEOUT":  "45s",
		"UPLOAD_MAX_WAIT_TIME": "1m30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 90*time.Second, cfg.Upload.MaxWaitTime)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"bad integer", map[string]string{"SERVER_PORT": "eighty"}, "SERVER_PORT"},
		{"bad duration", map[string]string{"UPLOAD_TIMEOUT": "soon"}, "UPLOAD_TIMEOUT"},
		{"bad bool", map[string]string{"RATE_LIMIT_ENABLED": "maybe"}, "RATE_LIMIT_ENABLED"},
		{"bad CIDR", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,not-a-cidr"}, "not-a-cidr"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.vars))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12 , ,192.168.0.0/16",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}, cfg.Security.TrustedProxies)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{"valid", func(*Config) {}, nil},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, []string{"SERVER_PORT"}},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, []string{"LOG_LEVEL"}},
		{"empty profile", func(c *Config) { c.Pipeline.DefaultProfile = " " }, []string{"PIPELINE_DEFAULT_PROFILE"}},
		{"negative preview", func(c *Config) { c.Pipeline.PreviewRows = -1 }, []string{"PIPELINE_PREVIEW_ROWS"}},
		{"rate limit without budget", func(c *Config) { c.Rate.UploadLimit = 0 }, []string{"RATE_LIMIT_UPLOAD"}},
		{"rate limit disabled", func(c *Config) { c.Rate = RateLimitConfig{} }, nil},
		{
			"reports every problem",
			func(c *Config) {
				c.Upload.MaxConcurrent = 0
				c.Logging.Format = "yaml"
			},
			[]string{"UPLOAD_MAX_CONCURRENT", "LOG_FORMAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"::1", 443, "[::1]:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		assert.Equal(t, tt.want, cfg.Addr(), "host=%q port=%d", tt.host, tt.port)
	}
}

func TestConfigString(t *testing.T) {
	cfg := validConfig()
	cfg.Security.TrustedProxies = []string{"10.0.0.0/8"}

	s := cfg.String()
	assert.Contains(t, s, `DefaultProfile: "elcm-group"`)
	assert.Contains(t, s, "TrustedProxies: 1")
	assert.NotContains(t, s, "10.0.0.0/8")
}
