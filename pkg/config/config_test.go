package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docgen-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "docgen-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, []string{"", "/api"}, cfg.HTTP.RoutePrefixes)
	assert.Equal(t, 4*1024*1024, cfg.HTTP.BodyLimitBytes())
	assert.Equal(t, config.AuthModeNone, cfg.Auth.Mode)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
	assert.False(t, cfg.Render.SpellKopecks)
	assert.True(t, cfg.Render.DecimalDisplay)
	assert.Equal(t, "ru", cfg.Render.DefaultLocale)
	assert.Equal(t, "Times New Roman", cfg.Render.DOCXFont)
	assert.Equal(t, 2268, cfg.Render.MinNameWidth)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_ROUTE_PREFIXES", "v1/, /api ,/api")
	t.Setenv("AUTH_MODE", "JWT")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("RENDER_SPELL_KOPECKS", "true")
	t.Setenv("AUTH_STATIC_TOKEN_HASHES", " a , ,b")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RENDER_DOCX_FONT", "Arial")
	t.Setenv("RENDER_MIN_NAME_WIDTH", "3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"/v1", "/api"}, cfg.HTTP.RoutePrefixes)
	assert.Equal(t, config.AuthModeJWT, cfg.Auth.Mode)
	assert.True(t, cfg.Render.SpellKopecks)
	assert.Equal(t, []string{"a", "b"}, cfg.Auth.StaticTokenHashes)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "Arial", cfg.Render.DOCXFont)
	assert.Equal(t, 3000, cfg.Render.MinNameWidth)
}

func TestLoad_ErroresDeValidacion(t *testing.T) {
	tests := map[string]map[string]string{
		"modo desconocido":      {"AUTH_MODE": "ldap"},
		"jwt sin secreto":       {"AUTH_MODE": "jwt"},
		"remote sin url":        {"AUTH_MODE": "remote"},
		"static sin hashes":     {"AUTH_MODE": "static"},
		"puerto fuera de rango": {"HTTP_PORT": "70000"},
		"ancho mínimo negativo": {"RENDER_MIN_NAME_WIDTH": "-1"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
