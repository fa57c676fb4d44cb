package resource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveEnvVariable(t *testing.T) {
	t.Setenv("TODO_API_TEST_PORT", "9090")

	tests := []struct {
		name  string
		value string
		want  any
	}{
		{name: "env present", value: "${TODO_API_TEST_PORT:8080}", want: "9090"},
		{name: "env missing uses default", value: "${TODO_API_TEST_MISSING:8080}", want: "8080"},
		{name: "env missing without default", value: "${TODO_API_TEST_MISSING}", want: ""},
		{name: "plain value", value: "postgres", want: "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEnvVariable(tt.value); got != tt.want {
				t.Fatalf("resolveEnvVariable(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestInitLoadsNestedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "application.yml")
	content := "app:\n  server:\n    port: ${TODO_API_TEST_SERVER_PORT:8181}\n  trash:\n    retention-days: 14\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write properties: %v", err)
	}

	Init(path)

	if got := GetString("app.server.port"); got != "8181" {
		t.Fatalf("expected port 8181, got %q", got)
	}
	if got := GetInt("app.trash.retention-days"); got != 14 {
		t.Fatalf("expected retention 14, got %d", got)
	}
}

func TestMergeOverlaysProfile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "application.yml")
	if err := os.WriteFile(base, []byte("app:\n  db:\n    driver: postgres\n    max-open-conns: 10\n"), 0o644); err != nil {
		t.Fatalf("write base: %v", err)
	}
	if err := os.WriteFile(profileFile(base, "local"), []byte("app:\n  db:\n    driver: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	Init(base)
	Merge(profileFile(base, "local"))

	if got := GetString("app.db.driver"); got != "sqlite" {
		t.Fatalf("expected profile to override driver, got %q", got)
	}
	if got := GetInt("app.db.max-open-conns"); got != 10 {
		t.Fatalf("expected base key to survive, got %d", got)
	}
}

func TestLocateWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, defaultPropertiesFile), []byte("app: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	nested := filepath.Join(root, "internal", "usecase")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(nested)

	want, _ := filepath.EvalSymlinks(filepath.Join(root, defaultPropertiesFile))
	got, _ := filepath.EvalSymlinks(locate(defaultPropertiesFile))
	if got != want {
		t.Fatalf("locate() = %q, want %q", got, want)
	}
}
