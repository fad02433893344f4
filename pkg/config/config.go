package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del motor (lectura vía Viper desde env y
// opcionalmente archivo .env / config.env).
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Currency CurrencyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// StoreConfig configuración del store SQLite embebido y del registro de
// estado de migración (archivo JSON fuera del store relacional).
type StoreConfig struct {
	Path          string // ruta del archivo .db
	StatusPath    string // ruta del archivo de estado de migración
	BusyTimeoutMS int    // espera ante SQLITE_BUSY
}

// CurrencyConfig moneda de presentación y precisión de almacenamiento.
// Precision gobierna el redondeo de la migración de centavos; la moneda y el
// locale solo afectan el formateo para mostrar, nunca lo persistido.
type CurrencyConfig struct {
	Code      string // ISO 4217, ej. COP, USD
	Locale    string // BCP 47, ej. es-CO
	Precision int32  // decimales almacenados
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_PATH, CURRENCY_CODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "caja-pro"),
		},
		Store: StoreConfig{
			Path:          getString(v, "STORE_PATH", "caja-pro.db"),
			StatusPath:    getString(v, "STORE_STATUS_PATH", "caja-pro.status.json"),
			BusyTimeoutMS: getInt(v, "STORE_BUSY_TIMEOUT_MS", 5000),
		},
		Currency: CurrencyConfig{
			Code:      getString(v, "CURRENCY_CODE", "USD"),
			Locale:    getString(v, "CURRENCY_LOCALE", "es-CO"),
			Precision: int32(getInt(v, "CURRENCY_PRECISION", 2)),
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
