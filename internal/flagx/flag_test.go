package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var (
	serverFlags = []string{"-a", "-d", "-s", "-t", "-k", "-w", "-l", "-m", "-x", "-v", "-u", "-p", "-b", "-g", "-e"}
	seedFlags   = []string{"-f", "-o"}
)

func TestFilterArgs_ServerAndSeedShareArgs(t *testing.T) {
	args := []string{"-f", "items.json", "-l", "50", "-m=30", "-x=true", "-o", "catalog/items.json", "-d", "postgres://db"}

	assert.Empty(t, cmp.Diff(
		[]string{"-l", "50", "-m=30", "-x=true", "-d", "postgres://db"},
		FilterArgs(args, serverFlags),
	))
	assert.Empty(t, cmp.Diff(
		[]string{"-f", "items.json", "-o", "catalog/items.json"},
		FilterArgs(args, seedFlags),
	))
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "rate limit pair",
			args:    []string{"-l", "100", "-m", "60"},
			allowed: serverFlags,
			want:    []string{"-l", "100", "-m", "60"},
		},
		{
			name:    "bool flag in equals form",
			args:    []string{"-x=false", "-l", "5"},
			allowed: []string{"-x"},
			want:    []string{"-x=false"},
		},
		{
			name:    "bare bool flag before another flag takes no value",
			args:    []string{"-x", "-l", "5"},
			allowed: []string{"-x", "-l"},
			want:    []string{"-x", "-l", "5"},
		},
		{
			name:    "foreign flags dropped",
			args:    []string{"-test.v", "-test.run=TestX", "-f", "items.json"},
			allowed: serverFlags,
			want:    []string{},
		},
		{
			name:    "missing value at the end",
			args:    []string{"-f"},
			allowed: seedFlags,
			want:    []string{"-f"},
		},
		{
			name:    "negative-looking value is not consumed",
			args:    []string{"-m", "-1"},
			allowed: []string{"-m"},
			want:    []string{"-m"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-l", "10", "-l", "20"},
			allowed: []string{"-l"},
			want:    []string{"-l", "10", "-l", "20"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: seedFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.NotNil(t, got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "server.json", ConfigPath([]string{"-l", "50", "-config=server.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-c", "a.json", "-f", "items.json", "-c", "b.json"}))
	assert.Empty(t, ConfigPath([]string{"-c"}))
	assert.Empty(t, ConfigPath(nil))
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"seed", "-f", "items.json", "-c", "/etc/bookmarks/server.json"}
	assert.Equal(t, "/etc/bookmarks/server.json", JsonConfigFlags())

	os.Args = []string{"client", "-a", "http://127.0.0.1:5000"}
	assert.Empty(t, JsonConfigFlags())
}
