package configs

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvConfig holds the settings read straight from the environment before the property files load
type EnvConfig struct {
	ApplicationName string
	ContextPath     string
	Profile         string
}

var Env *EnvConfig

func init() {
	viper.AutomaticEnv()
	Env = Load(viper.GetViper())
}

// Load reads the environment settings from v, filling defaults for unset keys.
// The context path always starts with a slash and never ends with one.
func Load(v *viper.Viper) *EnvConfig {
	v.SetDefault("APPLICATION_NAME", "todo-api")
	v.SetDefault("CONTEXT_PATH", "/todo-api")
	v.SetDefault("APP_PROFILE", "default")

	return &EnvConfig{
		ApplicationName: v.GetString("APPLICATION_NAME"),
		ContextPath:     contextPath(v.GetString("CONTEXT_PATH")),
		Profile:         v.GetString("APP_PROFILE"),
	}
}

func contextPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return ""
	}
	return "/" + path
}
