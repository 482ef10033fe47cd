package icons

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func icoBytes(t *testing.T, frame []byte) []byte {
	t.Helper()
	data := make([]byte, 6+16)
	binary.LittleEndian.PutUint16(data[2:4], 1) // type: icon
	binary.LittleEndian.PutUint16(data[4:6], 1) // one frame
	data[6] = 64                                // width
	data[7] = 64                                // height
	binary.LittleEndian.PutUint32(data[14:18], uint32(len(frame)))
	binary.LittleEndian.PutUint32(data[18:22], uint32(len(data)))
	return append(data, frame...)
}

func newTestResolver(fs afero.Fs, themeDirs []string) *Resolver {
	return NewResolver(fs, logging.NewTestLogger(io.Discard), "/cache/icons", themeDirs, 48)
}

func TestPlaceholderDeterministic(t *testing.T) {
	t.Parallel()

	a := PlaceholderFor("Visual Studio Code")
	b := PlaceholderFor("Visual Studio Code")
	assert.Equal(t, a, b)
	assert.Equal(t, 'V', a.Letter)

	other := PlaceholderFor("7zip FM")
	assert.Equal(t, '7', other.Letter)

	assert.Equal(t, '?', PlaceholderFor("++--").Letter)
	assert.Equal(t, '?', PlaceholderFor("").Letter)
}

func TestResolveSiblingPNG(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/apps/tool/tool.exe", []byte("MZ"), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/apps/tool/tool.png", pngBytes(t, 128, 128), 0o644))

	r := newTestResolver(fs, nil)
	ref := r.Resolve("/apps/tool/tool.exe", "Tool", "")

	require.Equal(t, core.IconFile, ref.Kind)
	assert.True(t, fsExists(fs, ref.Path))

	// Persisted icon is scaled down to the configured size.
	f, err := fs.Open(ref.Path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestResolveUsesCacheOnSecondCall(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/apps/x/x.exe", []byte("MZ"), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/apps/x/x.png", pngBytes(t, 32, 32), 0o644))

	r := newTestResolver(fs, nil)
	first := r.Resolve("/apps/x/x.exe", "X", "")
	require.Equal(t, core.IconFile, first.Kind)

	// Remove the source; the cached bitmap must still be served.
	require.NoError(t, fs.Remove("/apps/x/x.png"))
	second := r.Resolve("/apps/x/x.exe", "X", "")
	assert.Equal(t, first, second)
}

func TestResolveFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/apps/bare/bare", []byte{0x7f}, 0o755))

	r := newTestResolver(fs, nil)
	ref := r.Resolve("/apps/bare/bare", "Bare App", "")

	assert.Equal(t, core.IconPlaceholder, ref.Kind)
	assert.Equal(t, PlaceholderFor("Bare App"), ref.Placeholder)
}

func TestResolveThemeIconByName(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/gedit", []byte{0x7f}, 0o755))
	require.NoError(t, afero.WriteFile(fs,
		"/usr/share/icons/hicolor/48x48/apps/org.gnome.gedit.png", pngBytes(t, 48, 48), 0o644))

	r := newTestResolver(fs, []string{"/usr/share/icons"})
	ref := r.Resolve("/usr/bin/gedit", "Text Editor", "org.gnome.gedit")

	assert.Equal(t, core.IconFile, ref.Kind)
}

func TestResolveScalableThemeIconReferencedInPlace(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/inkscape", []byte{0x7f}, 0o755))
	svgPath := "/usr/share/icons/hicolor/scalable/apps/inkscape.svg"
	require.NoError(t, afero.WriteFile(fs, svgPath, []byte("<svg/>"), 0o644))

	r := newTestResolver(fs, []string{"/usr/share/icons"})
	ref := r.Resolve("/usr/bin/inkscape", "Inkscape", "inkscape")

	require.Equal(t, core.IconFile, ref.Kind)
	assert.Equal(t, svgPath, ref.Path)
}

func TestDecodeICOWithPNGFrame(t *testing.T) {
	t.Parallel()

	img, err := decodeICO(icoBytes(t, pngBytes(t, 64, 64)))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestDecodeICORejectsLegacyFrame(t *testing.T) {
	t.Parallel()

	_, err := decodeICO(icoBytes(t, []byte{0x28, 0x00, 0x00, 0x00, 0x40}))
	assert.ErrorIs(t, err, errLegacyICOFrame)
}

func TestDecodeICORejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := decodeICO([]byte("png"))
	assert.Error(t, err)
	_, err = decodeICO(pngBytes(t, 8, 8))
	assert.Error(t, err)
}

func fsExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
