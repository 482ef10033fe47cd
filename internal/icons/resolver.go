package icons

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	"image/png"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/quantmind-br/appdex/internal/fsops"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/image/draw"
)

// Resolver extracts icon bitmaps for entries and persists them in the icon
// cache directory, keyed by entry identity. Extraction never fails outward:
// anything unrecoverable degrades to the synthesized placeholder.
type Resolver struct {
	fs        afero.Fs
	log       *zerolog.Logger
	cacheDir  string
	themeDirs []string
	size      int
}

// NewResolver creates an icon resolver writing scaled PNGs into cacheDir.
func NewResolver(fs afero.Fs, log *zerolog.Logger, cacheDir string, themeDirs []string, size int) *Resolver {
	if size < 1 {
		size = 48
	}
	return &Resolver{
		fs:        fs,
		log:       log,
		cacheDir:  cacheDir,
		themeDirs: themeDirs,
		size:      size,
	}
}

// Resolve returns an icon reference for the entry. Cached extractions are
// reused; otherwise every candidate source is tried in order and the first
// decodable image wins. Failure of every candidate yields the placeholder.
func (r *Resolver) Resolve(launchTarget, name, iconHint string) core.IconRef {
	fallback := core.IconRef{Kind: core.IconPlaceholder, Placeholder: PlaceholderFor(name)}
	if launchTarget == "" {
		return fallback
	}

	cached := r.cachePath(launchTarget)
	if fsops.Exists(r.fs, cached) {
		return core.IconRef{Kind: core.IconFile, Path: cached}
	}

	for _, cand := range r.candidates(launchTarget, iconHint) {
		if cand.direct != "" {
			return core.IconRef{Kind: core.IconFile, Path: cand.direct}
		}

		data, err := cand.load()
		if err != nil || len(data) == 0 {
			continue
		}

		if err := r.saveScaled(data, cached); err != nil {
			r.log.Debug().Err(err).Str("source", cand.desc).Str("target", launchTarget).
				Msg("icon candidate not usable")
			continue
		}

		r.log.Debug().Str("source", cand.desc).Str("icon", cached).Msg("icon extracted")
		return core.IconRef{Kind: core.IconFile, Path: cached}
	}

	return fallback
}

// cachePath derives the persisted icon location from the entry identity.
func (r *Resolver) cachePath(launchTarget string) string {
	sum := sha256.Sum256([]byte(launchTarget))
	return filepath.Join(r.cacheDir, hex.EncodeToString(sum[:8])+".png")
}

type candidate struct {
	desc   string
	direct string // referenced in place (scalable theme icons), no extraction
	load   func() ([]byte, error)
}

func (r *Resolver) fileCandidate(desc, path string) candidate {
	return candidate{
		desc: desc,
		load: func() ([]byte, error) { return afero.ReadFile(r.fs, path) },
	}
}

// candidates lists icon sources in priority order: explicit hints first,
// then images shipped next to the target, then Electron asar resources.
func (r *Resolver) candidates(launchTarget, iconHint string) []candidate {
	var out []candidate

	if iconHint != "" {
		if filepath.IsAbs(iconHint) {
			if strings.EqualFold(filepath.Ext(iconHint), ".svg") {
				if fsops.Exists(r.fs, iconHint) {
					out = append(out, candidate{desc: "hint svg", direct: iconHint})
				}
			} else if fsops.Exists(r.fs, iconHint) {
				out = append(out, r.fileCandidate("hint path", iconHint))
			}
		} else {
			out = append(out, r.themeCandidates(iconHint)...)
		}
	}

	dir := filepath.Dir(launchTarget)
	base := filepath.Base(launchTarget)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, sibling := range []string{
		filepath.Join(dir, stem+".png"),
		filepath.Join(dir, stem+".ico"),
		filepath.Join(dir, "icon.png"),
		filepath.Join(dir, ".DirIcon"), // AppImage convention
	} {
		if fsops.Exists(r.fs, sibling) {
			out = append(out, r.fileCandidate("sibling "+filepath.Base(sibling), sibling))
		}
	}

	asarPath := filepath.Join(dir, "resources", "app.asar")
	if fsops.Exists(r.fs, asarPath) {
		out = append(out, candidate{
			desc: "electron asar",
			load: func() ([]byte, error) { return r.loadFromAsar(asarPath) },
		})
	}

	return out
}

// themeCandidates resolves a bare icon name against the theme directories,
// largest raster sizes first, scalable SVG as the in-place fallback.
func (r *Resolver) themeCandidates(name string) []candidate {
	var out []candidate
	rasterSizes := []string{"256x256", "128x128", "64x64", "48x48", "32x32"}

	for _, base := range r.themeDirs {
		for _, size := range rasterSizes {
			p := filepath.Join(base, "hicolor", size, "apps", name+".png")
			if fsops.Exists(r.fs, p) {
				out = append(out, r.fileCandidate("theme "+size, p))
			}
		}
		// Flat layouts such as /usr/share/pixmaps.
		for _, ext := range []string{".png", ".ico"} {
			p := filepath.Join(base, name+ext)
			if fsops.Exists(r.fs, p) {
				out = append(out, r.fileCandidate("theme flat", p))
			}
		}
		p := filepath.Join(base, "hicolor", "scalable", "apps", name+".svg")
		if fsops.Exists(r.fs, p) {
			out = append(out, candidate{desc: "theme svg", direct: p})
		}
	}

	return out
}

// saveScaled decodes raw icon bytes, scales them down to the configured
// size, and atomically persists the PNG at dest.
func (r *Resolver) saveScaled(data []byte, dest string) error {
	img, err := decodeImage(data)
	if err != nil {
		return err
	}

	img = scaleDown(img, r.size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	if err := fsops.WriteFileAtomic(r.fs, dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("persist icon: %w", err)
	}
	return nil
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) >= 4 && binary.LittleEndian.Uint16(data[0:2]) == 0 &&
		binary.LittleEndian.Uint16(data[2:4]) == 1 {
		return decodeICO(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// scaleDown resizes an image so its longest edge equals size. Images already
// small enough pass through untouched.
func scaleDown(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= size && h <= size {
		return img
	}

	scale := float64(size) / float64(w)
	if h > w {
		scale = float64(size) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
