package bootstrap_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docgen-api/internal/application/dto"
	"github.com/jhoicas/docgen-api/internal/bootstrap"
	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/infrastructure/authprovider"
	"github.com/jhoicas/docgen-api/pkg/config"
)

func TestNewGenerateUseCase_DocxYPdf(t *testing.T) {
	uc, err := bootstrap.NewGenerateUseCase(
		config.AppConfig{Name: "docgen-api"},
		config.RenderConfig{DecimalDisplay: true, DefaultLocale: "en"},
		zerolog.Nop(),
	)
	require.NoError(t, err)

	doc, err := uc.Generate(context.Background(), &dto.GenerateRequest{Type: "invoice", Format: "docx"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("PK")))

	doc, err = uc.Generate(context.Background(), &dto.GenerateRequest{Type: "invoice", Format: "pdf"})
	require.NoError(t, err, "el locale por defecto en inglés no necesita fuente")
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestNewGenerateUseCase_FuenteDocxConfigurable(t *testing.T) {
	uc, err := bootstrap.NewGenerateUseCase(
		config.AppConfig{Name: "docgen-api"},
		config.RenderConfig{DOCXFont: "Arial", MinNameWidth: 3000},
		zerolog.Nop(),
	)
	require.NoError(t, err)

	doc, err := uc.Generate(context.Background(), &dto.GenerateRequest{Type: "invoice", Format: "docx", Locale: "en"})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	require.NoError(t, err)
	f, err := zr.Open("word/styles.xml")
	require.NoError(t, err)
	defer f.Close()
	styles, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(styles), `w:ascii="Arial"`)
	assert.NotContains(t, string(styles), "Times New Roman")
}

func TestNewGenerateUseCase_FuenteInexistente(t *testing.T) {
	_, err := bootstrap.NewGenerateUseCase(config.AppConfig{}, config.RenderConfig{PDFFontPath: "/no/existe.ttf"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewVerifier(t *testing.T) {
	v, err := bootstrap.NewVerifier(config.AuthConfig{Mode: config.AuthModeNone})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = bootstrap.NewVerifier(config.AuthConfig{Mode: config.AuthModeJWT, JWTSecret: "s"})
	require.NoError(t, err)
	assert.IsType(t, &authprovider.JWTVerifier{}, v)

	v, err = bootstrap.NewVerifier(config.AuthConfig{Mode: config.AuthModeRemote, ProviderURL: "http://127.0.0.1:1", Timeout: time.Second})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	hash, err := authprovider.HashToken("t")
	require.NoError(t, err)
	v, err = bootstrap.NewVerifier(config.AuthConfig{Mode: config.AuthModeStatic, StaticTokenHashes: []string{hash}})
	require.NoError(t, err)
	assert.IsType(t, &authprovider.StaticVerifier{}, v)

	_, err = bootstrap.NewVerifier(config.AuthConfig{Mode: config.AuthModeStatic})
	assert.Error(t, err)
	_, err = bootstrap.NewVerifier(config.AuthConfig{Mode: "ldap"})
	assert.Error(t, err)
}
