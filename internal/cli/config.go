package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sangkips/ddms-api/internal/session"
	"github.com/spf13/viper"
)

// Config is the console configuration.
type Config struct {
	APIURL      string
	SessionFile string
	LogLevel    string
	Session     session.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DDMS_API_URL", "http://localhost:8080/api/v1")
	v.SetDefault("DDMS_SESSION_FILE", defaultSessionFile())
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("SESSION_TIMEOUT", session.DefaultTimeout)
	v.SetDefault("SESSION_WARNING", session.DefaultWarning)
	v.SetDefault("SESSION_COUNTDOWN_INTERVAL", session.DefaultCountdownInterval)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "ddmsctl", "session.json")
}

// LoadConfig reads the console configuration from the environment.
// Flags bound to v take precedence.
func LoadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		APIURL:      v.GetString("DDMS_API_URL"),
		SessionFile: v.GetString("DDMS_SESSION_FILE"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Session: session.Config{
			Timeout:           v.GetDuration("SESSION_TIMEOUT"),
			Warning:           v.GetDuration("SESSION_WARNING"),
			CountdownInterval: v.GetDuration("SESSION_COUNTDOWN_INTERVAL"),
		},
	}
	if err := cfg.Session.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
