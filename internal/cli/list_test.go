package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/heroes/internal/query"
)

// decodeView decodes the data of a JSON envelope into a View.
func decodeView(t *testing.T, out string) query.View {
	t.Helper()
	var resp struct {
		Status string     `json:"status"`
		Data   query.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func names(v query.View) []string {
	out := make([]string, len(v.Items))
	for i, r := range v.Items {
		out[i] = r.Name
	}
	return out
}

func TestListCommand_FirstPage(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	for _, name := range []string{"Superman", "Spiderman", "Wonder Woman", "Batman", "Iron Man"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "Captain America")
	assert.Contains(t, out, "1 - 5 of 25 (page 1 of 5)")
}

func TestListCommand_SearchAndPageJSON(t *testing.T) {
	out, err := execute(t, "list", "--search", "man", "--page", "1", "--format", "json")
	require.NoError(t, err)

	view := decodeView(t, out)
	assert.Equal(t, 7, view.Total)
	assert.Equal(t, 1, view.Page.Index)
	assert.Equal(t, []string{"Ant-Man", "Aquaman"}, names(view))
}

func TestListCommand_ClampsPastEnd(t *testing.T) {
	out, err := execute(t, "list", "--search", "man", "--page", "9", "--format", "json")
	require.NoError(t, err)

	view := decodeView(t, out)
	assert.Equal(t, 1, view.Page.Index)
}

func TestListCommand_MatchBrand(t *testing.T) {
	out, err := execute(t, "list", "--search", "dc", "--match-brand", "--size", "20", "--format", "json")
	require.NoError(t, err)

	view := decodeView(t, out)
	assert.Equal(t, 11, view.Total)
	assert.Len(t, view.Items, 11)
}

func TestListCommand_NoMatches(t *testing.T) {
	out, err := execute(t, "list", "--search", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No heroes match \"zzz\".\n", out)
}

func TestListCommand_RejectsZeroSize(t *testing.T) {
	out, err := execute(t, "list", "--size", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "page size must be at least 1")
}

func TestListCommand_RejectsNegativePage(t *testing.T) {
	_, err := execute(t, "list", "--page", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListCommand_ConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "heroes.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("page_size: 3\nmatch_brand: true\n"), 0o644))

	out, err := execute(t, "list", "--config", cfgPath, "--search", "marvel", "--format", "json")
	require.NoError(t, err)
	view := decodeView(t, out)
	assert.Equal(t, 3, view.Page.Size)
	assert.Equal(t, 14, view.Total)

	t.Setenv("HEROES_PAGE_SIZE", "4")
	out, err = execute(t, "list", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 4, decodeView(t, out).Page.Size)

	out, err = execute(t, "list", "--config", cfgPath, "--size", "2", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 2, decodeView(t, out).Page.Size)
}

func TestListCommand_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
heroes:
  - {id: a, name: Storm, power: Weather, brand: Marvel, created_ago: 2s}
  - {id: b, name: Raven, power: Empathy, brand: DC, created_ago: 1s}
`), 0o644))

	out, err := execute(t, "list", "--catalog", path, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Storm", "Raven"}, names(decodeView(t, out)))
}
