package main

import (
	"bytes"
	"context"
	"testing"

	"hbnb/internal/config"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.Driver = config.MemoryDriver
	cfg.Facade.AllowAdminBootstrap = true

	var out bytes.Buffer
	root := newRootCommand(cfg)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))

	return out.String()
}

func TestMetricsFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		metrics bool
	}{
		{"after the subcommand", []string{"user", "list", "--metrics"}, true},
		{"before the subcommand", []string{"--metrics", "amenity", "list"}, true},
		{"absent", []string{"user", "list"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := execute(t, tt.args...)
			require.Contains(t, out, "[]")
			if tt.metrics {
				require.Regexp(t, `hbnb.storage.operation.duration`, out)
			} else {
				require.NotRegexp(t, `hbnb.storage.operation`, out)
			}
		})
	}
}

func TestUserCreate_RendersWithoutPassword(t *testing.T) {
	out := execute(t, "user", "create",
		"--first-name", "Root", "--last-name", "Admin",
		"--email", "root@hbnb.io", "--new-password", "secret", "--admin")

	require.Contains(t, out, `"root@hbnb.io"`)
	require.Contains(t, out, `"is_admin"`)
	require.NotContains(t, out, "secret")
	require.NotContains(t, out, "$2a$")
	require.NotContains(t, out, "password")
}
