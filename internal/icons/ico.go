package icons

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

// errLegacyICOFrame marks .ico frames stored as raw DIBs. Reconstructing the
// doubled-height bitmap plus AND mask is not worth it when every modern icon
// carries a PNG frame; callers fall back to the placeholder.
var errLegacyICOFrame = errors.New("ico frame is not PNG-compressed")

type icoDirEntry struct {
	width  int
	height int
	size   uint32
	offset uint32
}

// decodeICO decodes the largest PNG-compressed frame of an .ico file.
func decodeICO(data []byte) (image.Image, error) {
	if len(data) < 6 {
		return nil, errors.New("ico too short")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != 1 {
		return nil, errors.New("not an ico file")
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 {
		return nil, errors.New("ico has no frames")
	}

	var best *icoDirEntry
	for i := 0; i < count; i++ {
		off := 6 + i*16
		if off+16 > len(data) {
			return nil, errors.New("truncated ico directory")
		}
		// Width/height bytes of 0 mean 256.
		w := int(data[off])
		if w == 0 {
			w = 256
		}
		h := int(data[off+1])
		if h == 0 {
			h = 256
		}
		entry := icoDirEntry{
			width:  w,
			height: h,
			size:   binary.LittleEndian.Uint32(data[off+8 : off+12]),
			offset: binary.LittleEndian.Uint32(data[off+12 : off+16]),
		}
		if best == nil || entry.width*entry.height > best.width*best.height {
			e := entry
			best = &e
		}
	}

	end := int64(best.offset) + int64(best.size)
	if end > int64(len(data)) {
		return nil, errors.New("truncated ico frame")
	}
	frame := data[best.offset:end]

	if !bytes.HasPrefix(frame, pngMagic) {
		return nil, errLegacyICOFrame
	}

	img, err := png.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("decode ico png frame: %w", err)
	}
	return img, nil
}
