package cmd

import (
	"bytes"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/magarciasopo/nagios-plugins/internal/config"
	"github.com/magarciasopo/nagios-plugins/internal/domain"
	"github.com/magarciasopo/nagios-plugins/internal/services/auth"
)

// isolate points config at a temp file and clears every environment
// variable the plugin reads.
func isolate(t *testing.T) string {
	t.Helper()
	for _, spec := range config.Keys {
		for _, name := range spec.Env {
			t.Setenv(name, "")
		}
	}
	for _, name := range config.PasswordEnv {
		t.Setenv(name, "")
	}
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// fakeCM serves body with status for every request and records the last one.
type fakeCM struct {
	srv   *httptest.Server
	host  string
	port  string
	last  *http.Request
	calls int
}

func newFakeCM(t *testing.T, status int, body string) *fakeCM {
	t.Helper()
	f := &fakeCM{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls++
		f.last = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)

	host, port, err := net.SplitHostPort(strings.TrimPrefix(f.srv.URL, "http://"))
	if err != nil {
		t.Fatalf("split %s: %v", f.srv.URL, err)
	}
	f.host, f.port = host, port
	return f
}

func (f *fakeCM) args(extra ...string) []string {
	return append([]string{"-H", f.host, "-P", f.port, "-u", "admin", "-p", "admin"}, extra...)
}

func run(t *testing.T, store auth.Store, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	if store == nil {
		store = auth.NewMockStore()
	}
	var outBuf, errBuf bytes.Buffer
	a := &app{store: store}
	code = a.execute(args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestCheck_SingleMetric(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 200, `{"items":[{"name":"dfs_capacity","data":[{"timestamp":"2024-01-01T00:00:00.000Z","value":500}]}]}`)

	stdout, _, code := run(t, nil, cm.args("-C", "Cluster 1", "-s", "hdfs", "-m", "dfs_capacity")...)

	if code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if stdout != "OK: dfs_capacity=500 | dfs_capacity=500\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
	if cm.last.URL.Path != "/api/v1/clusters/Cluster 1/services/hdfs/metrics" {
		t.Errorf("unexpected path %q", cm.last.URL.Path)
	}
	if got := cm.last.URL.Query()["metrics"]; len(got) != 1 || got[0] != "dfs_capacity" {
		t.Errorf("unexpected metrics query %v", got)
	}
	if user, pass, ok := cm.last.BasicAuth(); !ok || user != "admin" || pass != "admin" {
		t.Errorf("expected basic auth admin/admin, got %q/%q (%v)", user, pass, ok)
	}
}

func TestCheck_Unauthorized(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 401, `{ "message" : "Bad credentials" }`)

	stdout, _, code := run(t, nil, cm.args("-C", "c1", "-s", "hdfs", "-m", "dfs_capacity")...)

	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	for _, want := range []string{"CRITICAL: ", "401", "Bad credentials"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got %q", want, stdout)
		}
	}
}

func TestCheck_HTMLBody(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 200, `<html><body>Please log in</body></html>`)

	stdout, _, code := run(t, nil, cm.args("-C", "c1", "-s", "hdfs", "-m", "dfs_capacity")...)

	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.HasPrefix(stdout, "CRITICAL: json decode error") {
		t.Errorf("expected decode failure, got %q", stdout)
	}
}

func TestCheck_FanOutThreshold(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 200, `{"items":[
		{"name":"write_ios","context":"c1:hdfs:disk1","unit":"ios","data":[{"timestamp":"t","value":10}]},
		{"name":"write_ios","context":"c1:hdfs:disk2","unit":"ios","data":[{"timestamp":"t","value":30}]}
	]}`)

	stdout, _, code := run(t, nil, cm.args("-C", "c1", "-s", "hdfs", "-m", "write_ios", "-w", "20", "-c", "40")...)

	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	want := "WARNING: write_ios_disk1=10 write_ios_disk2=30 | write_ios_disk1=10 write_ios_disk2=30\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestCheck_ListRoles(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 200, `{"items":[{"name":"role-A"},{"name":"role-B"}]}`)

	stdout, _, code := run(t, nil, cm.args("-C", "c1", "-s", "hdfs", "-l", "-w", "1")...)

	if code != 3 {
		t.Errorf("expected exit 3, got %d", code)
	}
	if stdout != "Roles:\n\nrole-A\nrole-B\n" {
		t.Errorf("unexpected listing %q", stdout)
	}
	if cm.last.URL.Path != "/api/v1/clusters/c1/services/hdfs/roles" {
		t.Errorf("unexpected path %q", cm.last.URL.Path)
	}
}

func TestCheck_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no scope", []string{"-m", "a"}, "--cluster + --service"},
		{"host and cluster", []string{"-I", "host1", "-C", "c1", "-m", "a"}, "--hostId cannot be combined"},
		{"bad metric", []string{"-C", "c1", "-s", "hdfs", "-m", "a-b"}, "invalid metric"},
		{"metrics and all", []string{"-C", "c1", "-s", "hdfs", "-m", "a", "-a"}, "usage error"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"stray argument", []string{"extra"}, "usage error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cm := newFakeCM(t, 200, `{"items":[]}`)

			stdout, _, code := run(t, nil, cm.args(tt.args...)...)

			if code != 3 {
				t.Errorf("expected exit 3, got %d (%q)", code, stdout)
			}
			if !strings.HasPrefix(stdout, "UNKNOWN: ") || !strings.Contains(stdout, tt.want) {
				t.Errorf("expected UNKNOWN containing %q, got %q", tt.want, stdout)
			}
			if cm.calls != 0 {
				t.Errorf("expected no request on usage error, got %d", cm.calls)
			}
		})
	}
}

func TestCheck_MissingCredentials(t *testing.T) {
	isolate(t)

	stdout, _, code := run(t, nil, "-H", "cm", "-C", "c1", "-s", "hdfs", "-m", "a")
	if code != 3 || !strings.Contains(stdout, "user not defined") {
		t.Errorf("expected user not defined, got %d %q", code, stdout)
	}

	stdout, _, code = run(t, nil, "-H", "cm", "-u", "admin", "-C", "c1", "-s", "hdfs", "-m", "a")
	if code != 3 || !strings.Contains(stdout, "password not defined") {
		t.Errorf("expected password not defined, got %d %q", code, stdout)
	}
}

func TestCheck_SettingsFromEnvConfigAndKeychain(t *testing.T) {
	path := isolate(t)
	cm := newFakeCM(t, 200, `{"items":[{"name":"a","data":[{"timestamp":"t","value":1}]}]}`)

	cfg := &config.Config{Host: cm.host, Port: "1", User: "monitor"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	t.Setenv("CLOUDERA_MANAGER_PORT", cm.port)

	store := auth.NewMockStore()
	if err := store.SetPassword(auth.Account("monitor", cm.host), "from-keychain"); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := run(t, store, "-C", "c1", "-s", "hdfs", "-m", "a")

	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%q)", code, stdout)
	}
	if user, pass, _ := cm.last.BasicAuth(); user != "monitor" || pass != "from-keychain" {
		t.Errorf("expected monitor/from-keychain, got %s/%s", user, pass)
	}
}

func TestCheck_EnvFile(t *testing.T) {
	isolate(t)
	cm := newFakeCM(t, 200, `{"items":[{"name":"a","data":[{"timestamp":"t","value":1}]}]}`)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "CLOUDERA_MANAGER_HOST=" + cm.host + "\nCLOUDERA_MANAGER_PORT=" + cm.port +
		"\nCLOUDERA_MANAGER_USER=envuser\nCLOUDERA_MANAGER_PASSWORD=envpass\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	for _, name := range []string{"CLOUDERA_MANAGER_HOST", "CLOUDERA_MANAGER_PORT", "CLOUDERA_MANAGER_USER", "CLOUDERA_MANAGER_PASSWORD"} {
		os.Unsetenv(name)
		t.Cleanup(func() { os.Unsetenv(name) })
	}

	stdout, _, code := run(t, nil, "--env-file", envFile, "-C", "c1", "-s", "hdfs", "-m", "a")

	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%q)", code, stdout)
	}
	if user, pass, _ := cm.last.BasicAuth(); user != "envuser" || pass != "envpass" {
		t.Errorf("expected envuser/envpass, got %s/%s", user, pass)
	}
}

func TestConnectionOptions_TLSPortShift(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"plain default", nil, 7180},
		{"ssl default", []string{"-S"}, 7183},
		{"noverify implies ssl", []string{"--ssl-noverify"}, 7183},
		{"explicit default port shifts", []string{"-S", "-P", "7180"}, 7183},
		{"explicit custom port kept", []string{"-S", "-P", "8443"}, 8443},
		{"plain explicit port kept", []string{"-P", "8080"}, 8080},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			a := &app{store: auth.NewMockStore()}
			root := a.rootCmd()
			if err := root.ParseFlags(append([]string{"-H", "cm", "-u", "u", "-p", "p"}, tt.args...)); err != nil {
				t.Fatal(err)
			}

			opts, timeout, err := a.connectionOptions(root, &config.Config{}, newLogger(&bytes.Buffer{}, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Port != tt.want {
				t.Errorf("expected port %d, got %d", tt.want, opts.Port)
			}
			if timeout.Seconds() != defaultTimeoutSeconds {
				t.Errorf("expected default timeout, got %s", timeout)
			}
		})
	}
}

func TestConnectionOptions_InvalidTimeout(t *testing.T) {
	for _, value := range []string{"0", "-5", "abc"} {
		t.Run(value, func(t *testing.T) {
			isolate(t)
			t.Setenv("CLOUDERA_MANAGER_TIMEOUT", value)
			a := &app{store: auth.NewMockStore()}
			root := a.rootCmd()
			if err := root.ParseFlags([]string{"-H", "cm", "-u", "u", "-p", "p"}); err != nil {
				t.Fatal(err)
			}

			_, timeout, err := a.connectionOptions(root, &config.Config{}, newLogger(&bytes.Buffer{}, 0))
			if !errors.Is(err, domain.ErrUsage) {
				t.Fatalf("expected usage error, got timeout %s and err %v", timeout, err)
			}
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	for v, want := range []string{"warning", "info", "debug", "trace", "trace"} {
		if got := newLogger(&bytes.Buffer{}, v).GetLevel().String(); got != want {
			t.Errorf("verbosity %s: expected %s, got %s", strconv.Itoa(v), want, got)
		}
	}
}
