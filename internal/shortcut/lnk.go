package shortcut

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf16"

	"github.com/quantmind-br/appdex/internal/core"
	"github.com/spf13/afero"
)

// Shell link (.lnk) constants from the MS-SHLLINK layout.
const (
	lnkHeaderSize = 0x4C

	flagHasLinkTargetIDList = 0x01
	flagHasLinkInfo         = 0x02
	flagHasName             = 0x04
	flagHasRelativePath     = 0x08
	flagHasWorkingDir       = 0x10
	flagHasArguments        = 0x20
	flagHasIconLocation     = 0x40
	flagIsUnicode           = 0x80

	linkInfoFlagLocalBasePath = 0x01

	// Shortcuts are tiny; anything bigger is malformed or hostile.
	maxLnkSize = 1 << 20
)

var errMalformedLnk = errors.New("malformed shell link")

// LnkResolver resolves Windows .lnk shortcut files by reading the stored
// absolute target path from the LinkInfo block.
type LnkResolver struct {
	fs afero.Fs
}

// NewLnkResolver creates a resolver backed by the given filesystem.
func NewLnkResolver(fs afero.Fs) *LnkResolver {
	return &LnkResolver{fs: fs}
}

// Resolve parses the shortcut and returns its launch target. A shortcut
// whose stored target no longer exists yields core.ErrNotLaunchable.
func (r *LnkResolver) Resolve(path string) (*core.ResolvedShortcut, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat shortcut: %w", err)
	}
	if info.Size() > maxLnkSize {
		return nil, errMalformedLnk
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read shortcut: %w", err)
	}

	link, err := parseLnk(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	target := link.localBasePath
	if target == "" && link.relativePath != "" {
		target = filepath.Join(filepath.Dir(path), filepath.FromSlash(link.relativePath))
	}
	if target == "" {
		return nil, core.ErrNotLaunchable
	}

	if _, err := r.fs.Stat(target); err != nil {
		// Dead target: skip, not an error.
		return nil, core.ErrNotLaunchable
	}

	return &core.ResolvedShortcut{
		Target:      target,
		DisplayName: link.name,
		IconHint:    link.iconLocation,
	}, nil
}

type shellLink struct {
	localBasePath string
	name          string
	relativePath  string
	iconLocation  string
}

// parseLnk walks the fixed header, the optional IDList and LinkInfo blocks,
// and the StringData section. Every length is bounds-checked; any
// inconsistency fails with errMalformedLnk rather than panicking on
// attacker-controlled input.
func parseLnk(data []byte) (*shellLink, error) {
	if len(data) < lnkHeaderSize {
		return nil, errMalformedLnk
	}
	if binary.LittleEndian.Uint32(data[0:4]) != lnkHeaderSize {
		return nil, errMalformedLnk
	}

	flags := binary.LittleEndian.Uint32(data[0x14:0x18])
	link := &shellLink{}
	offset := lnkHeaderSize

	if flags&flagHasLinkTargetIDList != 0 {
		if offset+2 > len(data) {
			return nil, errMalformedLnk
		}
		idListSize := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2 + idListSize
		if offset > len(data) {
			return nil, errMalformedLnk
		}
	}

	if flags&flagHasLinkInfo != 0 {
		size, err := parseLinkInfo(data[offset:], link)
		if err != nil {
			return nil, err
		}
		offset += size
	}

	// StringData blocks, in fixed order, only for set flags.
	unicode := flags&flagIsUnicode != 0
	for _, block := range []struct {
		flag uint32
		dst  *string
	}{
		{flagHasName, &link.name},
		{flagHasRelativePath, &link.relativePath},
		{flagHasWorkingDir, new(string)},
		{flagHasArguments, new(string)},
		{flagHasIconLocation, &link.iconLocation},
	} {
		if flags&block.flag == 0 {
			continue
		}
		value, size, err := readStringData(data[offset:], unicode)
		if err != nil {
			return nil, err
		}
		*block.dst = value
		offset += size
	}

	return link, nil
}

// parseLinkInfo extracts LocalBasePath from a LinkInfo block and returns the
// block's total size.
func parseLinkInfo(data []byte, link *shellLink) (int, error) {
	if len(data) < 4 {
		return 0, errMalformedLnk
	}
	infoSize := int(binary.LittleEndian.Uint32(data[0:4]))
	if infoSize < 0x1C || infoSize > len(data) {
		return 0, errMalformedLnk
	}
	info := data[:infoSize]

	headerSize := int(binary.LittleEndian.Uint32(info[4:8]))
	infoFlags := binary.LittleEndian.Uint32(info[8:12])

	if infoFlags&linkInfoFlagLocalBasePath != 0 {
		baseOffset := int(binary.LittleEndian.Uint32(info[16:20]))
		// The unicode offset lives in the extended header; trust it only
		// when the block is actually large enough to contain it.
		if headerSize >= 0x24 && infoSize >= 0x24 {
			// Prefer the unicode base path when the header carries it.
			uniOffset := int(binary.LittleEndian.Uint32(info[28:32]))
			if path, ok := readUTF16CString(info, uniOffset); ok {
				link.localBasePath = path
				return infoSize, nil
			}
		}
		if path, ok := readCString(info, baseOffset); ok {
			link.localBasePath = path
		}
	}

	return infoSize, nil
}

func readCString(data []byte, offset int) (string, bool) {
	if offset <= 0 || offset >= len(data) {
		return "", false
	}
	for end := offset; end < len(data); end++ {
		if data[end] == 0 {
			return string(data[offset:end]), true
		}
	}
	return "", false
}

func readUTF16CString(data []byte, offset int) (string, bool) {
	if offset <= 0 || offset >= len(data)-1 {
		return "", false
	}
	var units []uint16
	for i := offset; i+1 < len(data); i += 2 {
		u := binary.LittleEndian.Uint16(data[i : i+2])
		if u == 0 {
			return string(utf16.Decode(units)), true
		}
		units = append(units, u)
	}
	return "", false
}

// readStringData decodes one counted StringData block and returns its value
// and encoded size in bytes.
func readStringData(data []byte, unicode bool) (string, int, error) {
	if len(data) < 2 {
		return "", 0, errMalformedLnk
	}
	count := int(binary.LittleEndian.Uint16(data[0:2]))

	if unicode {
		size := 2 + count*2
		if size > len(data) {
			return "", 0, errMalformedLnk
		}
		units := make([]uint16, count)
		for i := 0; i < count; i++ {
			units[i] = binary.LittleEndian.Uint16(data[2+i*2 : 4+i*2])
		}
		return string(utf16.Decode(units)), size, nil
	}

	size := 2 + count
	if size > len(data) {
		return "", 0, errMalformedLnk
	}
	return string(data[2:size]), size, nil
}
