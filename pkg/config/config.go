package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Modos de autenticación admitidos en AUTH_MODE.
const (
	AuthModeNone   = "none"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
	AuthModeStatic = "static"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	CORS    CORSConfig
	Auth    AuthConfig
	Render  RenderConfig
	Metrics MetricsConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host          string
	Port          int
	RoutePrefixes []string // "" monta /generate en la raíz
	BodyLimitMB   int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimitBytes límite del cuerpo en bytes para fiber.Config.
func (c HTTPConfig) BodyLimitBytes() int {
	return c.BodyLimitMB * 1024 * 1024
}

// CORSConfig orígenes permitidos, separados por coma.
type CORSConfig struct {
	AllowedOrigins string
}

// AuthConfig autenticación de clientes del endpoint de generación.
type AuthConfig struct {
	Mode              string
	JWTSecret         string
	JWTIssuer         string
	ProviderURL       string // endpoint tipo /auth/v1/user del proveedor remoto
	ProviderAPIKey    string
	Timeout           time.Duration
	StaticTokenHashes []string // hashes bcrypt
}

// RenderConfig opciones de maquetación y renderizado.
type RenderConfig struct {
	SpellKopecks   bool // deletrear también los kopeks en el importe en letras
	DecimalDisplay bool
	PDFFontPath    string
	DefaultLocale  string
	DOCXFont       string
	// MinNameWidth ancho mínimo de la columna de nombre en twips; 0 usa el del planner.
	MinNameWidth int
}

// MetricsConfig expone /metrics.
type MetricsConfig struct {
	Enabled bool
}

// SwaggerConfig sirve la UI en /docs.
type SwaggerConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AUTH_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "docgen-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:          getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:          getInt(v, "HTTP_PORT", 8080),
			RoutePrefixes: parsePrefixes(getString(v, "HTTP_ROUTE_PREFIXES", ",/api")),
			BodyLimitMB:   getInt(v, "HTTP_BODY_LIMIT_MB", 4),
		},
		CORS: CORSConfig{
			AllowedOrigins: getString(v, "CORS_ALLOWED_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			Mode:              strings.ToLower(getString(v, "AUTH_MODE", AuthModeNone)),
			JWTSecret:         getString(v, "JWT_SECRET", ""),
			JWTIssuer:         getString(v, "JWT_ISSUER", ""),
			ProviderURL:       getString(v, "AUTH_PROVIDER_URL", ""),
			ProviderAPIKey:    getString(v, "AUTH_PROVIDER_API_KEY", ""),
			Timeout:           time.Duration(getInt(v, "AUTH_TIMEOUT_SECONDS", 5)) * time.Second,
			StaticTokenHashes: splitList(getString(v, "AUTH_STATIC_TOKEN_HASHES", "")),
		},
		Render: RenderConfig{
			SpellKopecks:   getBool(v, "RENDER_SPELL_KOPECKS", false),
			DecimalDisplay: getBool(v, "RENDER_DECIMAL_DISPLAY", true),
			PDFFontPath:    getString(v, "RENDER_PDF_FONT_PATH", ""),
			DefaultLocale:  getString(v, "RENDER_DEFAULT_LOCALE", "ru"),
			DOCXFont:       getString(v, "RENDER_DOCX_FONT", "Times New Roman"),
			MinNameWidth:   getInt(v, "RENDER_MIN_NAME_WIDTH", 2268),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		Swagger: SwaggerConfig{
			Enabled:  getBool(v, "SWAGGER_ENABLED", true),
			FilePath: getString(v, "SWAGGER_FILE_PATH", "./docs/swagger.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba combinaciones que impedirían arrancar el servicio.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT inválido: %d", c.HTTP.Port)
	}
	if c.HTTP.BodyLimitMB <= 0 {
		return fmt.Errorf("config: HTTP_BODY_LIMIT_MB debe ser positivo")
	}
	if c.Render.MinNameWidth < 0 {
		return fmt.Errorf("config: RENDER_MIN_NAME_WIDTH no puede ser negativo")
	}
	switch c.Auth.Mode {
	case AuthModeNone:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("config: AUTH_MODE=jwt requiere JWT_SECRET")
		}
	case AuthModeRemote:
		if c.Auth.ProviderURL == "" {
			return fmt.Errorf("config: AUTH_MODE=remote requiere AUTH_PROVIDER_URL")
		}
		if c.Auth.Timeout <= 0 {
			return fmt.Errorf("config: AUTH_TIMEOUT_SECONDS debe ser positivo")
		}
	case AuthModeStatic:
		if len(c.Auth.StaticTokenHashes) == 0 {
			return fmt.Errorf("config: AUTH_MODE=static requiere AUTH_STATIC_TOKEN_HASHES")
		}
	default:
		return fmt.Errorf("config: AUTH_MODE desconocido: %q", c.Auth.Mode)
	}
	return nil
}

// parsePrefixes normaliza ",/api/" a ["", "/api"] sin duplicados.
func parsePrefixes(s string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p != "" && !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
