package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapstep/internal/cli/config"
	"github.com/leapstack-labs/leapstep/internal/testutil"
	"github.com/leapstack-labs/leapstep/pkg/stepcaf"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, cc *CommandContext) *stepcaf.Writer {
	t.Helper()
	return stepcaf.New(cc.Cfg.WriterConfig(cc.Logger))
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shapes: []\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, testutil.NewTestLogger(t), 10*time.Millisecond, func() {
			changed <- struct{}{}
		})
	}()

	// writes to other files are ignored
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644)
		_ = os.WriteFile(path, []byte("shapes: []\n# edited\n"), 0o644)
		select {
		case <-changed:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	err := watchFile(context.Background(), filepath.Join(t.TempDir(), "nope", "doc.yaml"),
		testutil.NewTestLogger(t), time.Millisecond, func() {})
	require.Error(t, err)
}

func TestGetConfig_Defaults(t *testing.T) {
	config.ResetConfig()
	cfg := getConfig()
	require.Equal(t, stepcaf.AP214, cfg.Schema)
	require.Equal(t, stepcaf.DefaultModes(), cfg.Modes.Modes())
	require.NoError(t, cfg.Validate())
}
