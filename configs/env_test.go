package configs

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	env := Load(viper.New())

	if env.ApplicationName != "todo-api" || env.ContextPath != "/todo-api" || env.Profile != "default" {
		t.Fatalf("Load() = %+v", env)
	}
}

func TestLoadNormalizesContextPath(t *testing.T) {
	for raw, want := range map[string]string{
		"api/":      "/api",
		"/todo/v1/": "/todo/v1",
		" /":        "",
		"/todo-api": "/todo-api",
	} {
		v := viper.New()
		v.Set("CONTEXT_PATH", raw)
		if got := Load(v).ContextPath; got != want {
			t.Errorf("ContextPath(%q) = %q, want %q", raw, got, want)
		}
	}
}
