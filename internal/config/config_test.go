// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRAFT_STORE_BACKEND", "")
	t.Setenv("DRAFTS_FILE", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "drafts.json", cfg.Store.DraftFile)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DRAFT_STORE_BACKEND", "S3")
	t.Setenv("AWS_S3_BUCKET", "drafts-bucket")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendS3, cfg.Store.Backend)
	assert.Equal(t, "drafts-bucket", cfg.AWS.S3Bucket)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "file backend",
			cfg:  Config{Store: StoreConfig{Backend: BackendFile, DraftFile: "drafts.json"}},
		},
		{
			name:    "file backend without path",
			cfg:     Config{Store: StoreConfig{Backend: BackendFile}},
			wantErr: true,
		},
		{
			name:    "s3 backend without bucket",
			cfg:     Config{Store: StoreConfig{Backend: BackendS3}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     Config{Store: StoreConfig{Backend: "redis"}},
			wantErr: true,
		},
		{
			name: "default secret in production",
			cfg: Config{
				Environment: "production",
				JWT:         JWTConfig{SecretKey: defaultJWTSecret},
				Store:       StoreConfig{Backend: BackendFile, DraftFile: "drafts.json"},
			},
			wantErr: true,
		},
		{
			name: "postgres without password in production",
			cfg: Config{
				Environment: "production",
				JWT:         JWTConfig{SecretKey: "s3cr3t"},
				Store:       StoreConfig{Backend: BackendPostgres},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
