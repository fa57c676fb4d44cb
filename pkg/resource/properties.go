package resource

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesFile = "configs/application.yml"

var (
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
	properties = viper.New()
)

// init loads PROPERTIES_FILE_PATH, or configs/application.yml found from the working directory upwards.
// APP_PROFILE=<name> merges application-<name>.yml from the same directory on top.
func init() {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = locate(defaultPropertiesFile)
	}
	Init(path)

	if profile := os.Getenv("APP_PROFILE"); profile != "" {
		Merge(profileFile(path, profile))
	}
}

// Init replaces the loaded properties with the given YAML file.
// A missing file leaves only environment variables and explicit defaults available.
func Init(path string) {
	properties = viper.New()
	Merge(path)
}

// Merge overlays the keys of the given YAML file on the loaded properties
func Merge(path string) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Fail to read properties from %s: %v", path, err)
		return
	}

	for key, value := range flatten("", v.AllSettings()) {
		properties.Set(key, value)
	}
}

// locate walks up from the working directory until rel exists, so binaries and tests started
// in a subdirectory still find the repository configs
func locate(rel string) string {
	dir, err := os.Getwd()
	if err != nil {
		return rel
	}
	for {
		candidate := filepath.Join(dir, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return rel
		}
		dir = parent
	}
}

func profileFile(path string, profile string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + profile + ext
}

// flatten turns nested YAML maps into dotted keys with ${ENV:default} placeholders resolved
func flatten(prefix string, data map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			for nestedKey, nestedValue := range flatten(fullKey, v) {
				result[nestedKey] = nestedValue
			}
		case nil:
			log.Printf("Ignoring key '%s' without value.", fullKey)
		default:
			result[fullKey] = v
		}
	}
	return result
}

// resolveEnvVariable replaces a ${ENV:default} value with the environment value or its default.
// Plain values are returned untouched.
func resolveEnvVariable(value string) any {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}
