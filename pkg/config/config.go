package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	API  APIConfig
	Mock MockConfig
	HTTP HTTPConfig
	JWT  JWTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig configuración del cliente HTTP hacia el backend remoto.
type APIConfig struct {
	BaseURL       string        // URL base del API, ej. http://localhost:8080/api
	UseMockData   bool          // true = operar contra los stores en memoria
	Timeout       time.Duration // timeout por intento (por defecto 10s)
	RetryAttempts int           // intentos totales (por defecto 3)
	RetryDelay    time.Duration // base del backoff lineal (por defecto 1s)
}

// MockConfig ajustes de simulación para el modo mock.
// No debe activarse en producción.
type MockConfig struct {
	DelayMin  time.Duration // latencia artificial mínima
	DelayMax  time.Duration // latencia artificial máxima
	ErrorRate float64       // probabilidad de error inyectado [0.0, 1.0]
}

// HTTPConfig configuración del mockserver local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de los tokens de desarrollo del mockserver.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: API_BASE_URL, USE_MOCK_DATA,
// API_TIMEOUT_MS, API_RETRY_ATTEMPTS, MOCK_ERROR_RATE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "stock-gestion"),
		},
		API: APIConfig{
			BaseURL:       getString(v, "API_BASE_URL", "http://localhost:8080/api"),
			UseMockData:   getBool(v, "USE_MOCK_DATA", false),
			Timeout:       time.Duration(getInt(v, "API_TIMEOUT_MS", 10000)) * time.Millisecond,
			RetryAttempts: getInt(v, "API_RETRY_ATTEMPTS", 3),
			RetryDelay:    time.Duration(getInt(v, "API_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		},
		Mock: MockConfig{
			DelayMin:  time.Duration(getInt(v, "MOCK_API_DELAY_MIN_MS", 300)) * time.Millisecond,
			DelayMax:  time.Duration(getInt(v, "MOCK_API_DELAY_MAX_MS", 1000)) * time.Millisecond,
			ErrorRate: getFloat(v, "MOCK_ERROR_RATE", 0.0),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", "dev-secret-change-me"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "stock-gestion"),
		},
	}

	return cfg, nil
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, _ := strconv.ParseFloat(v.GetString(key), 64)
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
