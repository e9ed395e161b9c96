package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrismCut/internal/builder"
	"github.com/piwi3910/PrismCut/internal/config"
	"github.com/piwi3910/PrismCut/internal/deck"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "", "")

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "prismcut 1.2.3")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "built: 2026-01-01")
}

func TestLoadModelUnknownPreset(t *testing.T) {
	_, err := loadModel("preset:nope")
	assert.Error(t, err)
}

func TestBuildCmdWritesDeck(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.deck")

	_, err := execute(t, "build", "preset:classic-block",
		"--output", output, "--config-dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	summary, err := deck.Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, "classic_block", summary.CaseID)
	assert.Equal(t, [][2]int{{6, 6}}, summary.ModuleDims)
	assert.Equal(t, [2]int{1, 1}, summary.CoreDims)
}

func TestBuildCmdExports(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.deck")
	pdfPath := filepath.Join(dir, "report.pdf")
	dxfPath := filepath.Join(dir, "block.dxf")

	_, err := execute(t, "build", "preset:classic-block",
		"--output", output, "--config-dir", dir,
		"--pdf", pdfPath, "--dxf", dxfPath)
	require.NoError(t, err)

	for _, path := range []string{output, pdfPath, dxfPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestBuildCmdUnknownElement(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "build", "preset:classic-block",
		"--element", "missing", "--config-dir", dir,
		"--output", filepath.Join(dir, "out.deck"))
	assert.Error(t, err)
}

func TestRunInspectPreset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runInspect(&buf, "preset:classic-block", ""))

	out := buf.String()
	assert.Contains(t, out, "Element: block")
	assert.Contains(t, out, "Pitch:")
	assert.Contains(t, out, "Cap cell length:")
	assert.Contains(t, out, "Pin map 1 (6 x 6):")
	assert.Contains(t, out, "Materials:")
	assert.Contains(t, out, "Graphite")
}

func TestRenderPinMap(t *testing.T) {
	model, err := config.Preset("classic-block")
	require.NoError(t, err)
	el, err := model.Element("block")
	require.NoError(t, err)

	core, err := builder.New(nil).Build(el, model.Build)
	require.NoError(t, err)
	modules := coreModules(core)
	require.Len(t, modules, 1)

	out := renderPinMap(modules[0])
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 6)
	// 6 columns separated by spaces.
	assert.Len(t, strings.Fields(lines[0]), 6)
	// Legend entries follow the grid.
	assert.Contains(t, out, "A:")
}

func TestProfilesLifecycle(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "profiles", "save", "bench",
		"--height", "2.5", "--target-cartesian", "0.2",
		"--description", "bench profile", "--config-dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "profiles", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "bench")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "coarse")
	assert.Contains(t, out, "built-in")

	_, err = execute(t, "profiles", "delete", "bench", "--config-dir", dir)
	require.NoError(t, err)

	out, err = execute(t, "profiles", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "bench")
}

func TestProfilesDeleteBuiltIn(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "profiles", "delete", "coarse", "--config-dir", dir)
	assert.Error(t, err)
}

func TestBuildCmdProfileOverride(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.deck")

	_, err := execute(t, "profiles", "save", "tall",
		"--height", "3", "--config-dir", dir)
	require.NoError(t, err)

	_, err = execute(t, "build", "preset:classic-block",
		"--output", output, "--config-dir", dir, "--profile", "tall")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	// The profile's 3 cm height overrides the preset's 1 cm.
	assert.Contains(t, string(data), "axial 0.0 3")
}

func TestMaterialsListSeedsDefaults(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "materials", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Fuel Salt")
	assert.Contains(t, out, "Graphite")
	assert.Contains(t, out, "moderator")
}

func TestMaterialsImportAndRemove(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "library.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Density"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "Temperature"))
	require.NoError(t, f.SetCellValue("Sheet1", "D1", "Category"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "FLiBe"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1.94))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", 900.0))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", "coolant"))
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	_, err := execute(t, "materials", "import", xlsxPath, "--config-dir", dir)
	require.NoError(t, err)

	out, err := execute(t, "materials", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "FLiBe")

	_, err = execute(t, "materials", "remove", "FLiBe", "--config-dir", dir)
	require.NoError(t, err)

	out, err = execute(t, "materials", "list", "--config-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "FLiBe")
}

func TestMaterialsRemoveUnknown(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "materials", "remove", "Unobtainium", "--config-dir", dir)
	assert.Error(t, err)
}

func TestFormatTarget(t *testing.T) {
	assert.Equal(t, "-", formatTarget(0))
	assert.Equal(t, "0.15", formatTarget(0.15))
}
