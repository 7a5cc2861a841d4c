package browse

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	browsetui "github.com/leefowlercu/icns-extractor/internal/tui/browse"
	"github.com/leefowlercu/icns-extractor/internal/testutil"
)

func resetFlags() {
	browseType = ""
	browseOutputDir = ""
	browseFilter = ""
	browseCompression = ""
	browseTOC = false
	browseJSON = false
}

// stubBrowser replaces the TUI with pick, recording the items it was shown.
func stubBrowser(t *testing.T, pick func([]catalog.Item) (browsetui.Result, error)) *[]catalog.Item {
	t.Helper()
	var shown []catalog.Item
	original := runBrowser
	runBrowser = func(cat *catalog.Catalog) (browsetui.Result, error) {
		shown = cat.Items()
		return pick(shown)
	}
	t.Cleanup(func() { runBrowser = original })
	return &shown
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout bytes.Buffer
	BrowseCmd.SetOut(&stdout)
	BrowseCmd.SetErr(&bytes.Buffer{})
	BrowseCmd.SetArgs(args)
	BrowseCmd.SilenceErrors = true

	err := BrowseCmd.Execute()
	return stdout.String(), err
}

func TestBrowseCmd_ValidationErrors(t *testing.T) {
	testutil.NewTestEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad type", []string{"--type", "widgets"}, "invalid --type"},
		{"bad filter", []string{"--filter", "box"}, "invalid --filter"},
		{"bad compression", []string{"--compression", "max"}, "invalid --compression"},
		{"missing path", []string{filepath.Join(os.TempDir(), "does-not-exist-icns-extractor")}, "cannot add"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestBrowseCmd_Cancelled_ExportsNothing(t *testing.T) {
	env := testutil.NewTestEnv(t)
	stubBrowser(t, func([]catalog.Item) (browsetui.Result, error) {
		return browsetui.Result{Cancelled: true}, nil
	})

	out, err := runCommand(t)
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}

	entries, _ := os.ReadDir(env.OutputDir)
	if len(entries) != 0 {
		t.Errorf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestBrowseCmd_TypeFilterLimitsItems(t *testing.T) {
	testutil.NewTestEnv(t)
	shown := stubBrowser(t, func([]catalog.Item) (browsetui.Result, error) {
		return browsetui.Result{Cancelled: true}, nil
	})

	if _, err := runCommand(t, "--type", "folders"); err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if len(*shown) == 0 {
		t.Fatal("expected folder items to be shown")
	}
	for _, item := range *shown {
		if item.Type != catalog.TypeFolders {
			t.Errorf("item %q has type %s", item.Title, item.Type)
		}
	}
}

func TestBrowseCmd_SelectedPathItem_Exports(t *testing.T) {
	env := testutil.NewTestEnv(t)
	src := env.CreateTestPNG(env.CreateTestDir("src"), "badge.png", 48, 48)

	stubBrowser(t, func(items []catalog.Item) (browsetui.Result, error) {
		for _, item := range items {
			if item.Type == catalog.TypeCustom && item.Ref.Value == src {
				return browsetui.Result{Item: item, Selected: true}, nil
			}
		}
		return browsetui.Result{}, errors.New("custom item not offered")
	})

	out, err := runCommand(t, src, "--json")
	if err != nil {
		t.Fatalf("browse failed: %v", err)
	}

	want := filepath.Join(env.OutputDir, "badge.png.icns")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !strings.Contains(out, want) {
		t.Errorf("output missing path:\n%s", out)
	}
}

func TestBrowseCmd_BrowserErrorPropagates(t *testing.T) {
	testutil.NewTestEnv(t)
	stubBrowser(t, func([]catalog.Item) (browsetui.Result, error) {
		return browsetui.Result{}, errors.New("no tty")
	})

	if _, err := runCommand(t); err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Errorf("error = %v, want browser error", err)
	}
}

func TestBrowseCmd_SystemItemUnsupportedOffDarwin(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("system icons are available on darwin")
	}
	testutil.NewTestEnv(t)
	stubBrowser(t, func(items []catalog.Item) (browsetui.Result, error) {
		return browsetui.Result{Item: items[0], Selected: true}, nil
	})

	_, err := runCommand(t)
	if err == nil || !strings.Contains(err.Error(), "no icon available") {
		t.Errorf("error = %v, want unsupported platform error", err)
	}
}
