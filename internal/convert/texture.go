package convert

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"linux-tiltfx/internal/utils"
)

// .tex pixel formats
const (
	texFormatRGBA8888 = 0
	texFormatDXT5     = 4
	texFormatDXT3     = 6
	texFormatDXT1     = 7
	texFormatRG88     = 8
	texFormatR8       = 9
)

const maxTexBlock = 256 << 20

// FreeImage format code of TARGA data embedded in a .tex container.
const freeImageTarga = 17

var ErrUnsupportedTexture = errors.New("convert: unsupported texture")

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	if t.err != nil {
		return 0
	}
	var v uint32
	t.err = binary.Read(t.r, binary.LittleEndian, &v)
	return v
}

// magic reads an 8 byte tag and its NUL terminator.
func (t *texReader) magic() string {
	b := t.bytes(9)
	return string(bytes.Trim(b, "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	if n > maxTexBlock {
		t.err = fmt.Errorf("block of %d bytes", n)
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTex decodes the first mipmap of the first image of a .tex texture.
func DecodeTex(r io.Reader) (image.Image, error) {
	tr := &texReader{r: r}

	magic := tr.magic()
	_ = tr.magic()
	if tr.err != nil {
		return nil, fmt.Errorf("tex: header: %w", tr.err)
	}
	if magic != "TEXV0005" {
		return nil, fmt.Errorf("tex: invalid magic: %q", magic)
	}

	format := tr.uint32()
	_ = tr.uint32() // flags
	_ = tr.uint32() // texture width
	_ = tr.uint32() // texture height
	imgW := tr.uint32()
	imgH := tr.uint32()
	_ = tr.uint32()

	containerMagic := tr.magic()
	imageCount := tr.uint32()
	freeImageFormat := uint32(0xFFFFFFFF)
	if containerMagic == "TEXB0003" {
		freeImageFormat = tr.uint32()
	}
	if tr.err != nil {
		return nil, fmt.Errorf("tex: container: %w", tr.err)
	}
	utils.Debug("    Format: %d, Container: %s, Target Size: %dx%d", format, containerMagic, imgW, imgH)

	if imageCount == 0 {
		return nil, fmt.Errorf("tex: no image found in texture")
	}

	mipmapCount := tr.uint32()
	if mipmapCount == 0 {
		return nil, fmt.Errorf("tex: image has no mipmaps")
	}
	mW := tr.uint32()
	mH := tr.uint32()
	var isLZ4 bool
	var decompressedSize uint32
	if containerMagic != "TEXB0001" {
		isLZ4 = tr.uint32() == 1
		decompressedSize = tr.uint32()
	}
	data := tr.bytes(tr.uint32())
	if tr.err != nil {
		return nil, fmt.Errorf("tex: mipmap: %w", tr.err)
	}

	if isLZ4 {
		utils.Debug("    Decompressing LZ4: %d -> %d", len(data), decompressedSize)
		if decompressedSize > maxTexBlock {
			return nil, fmt.Errorf("tex: lz4 block of %d bytes", decompressedSize)
		}
		decoded := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, fmt.Errorf("tex: lz4: %w", err)
		}
		data = decoded[:n]
	}

	if freeImageFormat != 0xFFFFFFFF {
		img, err := decodeImage(bytes.NewReader(data), freeImageFormat == freeImageTarga)
		if err != nil {
			return nil, fmt.Errorf("tex: embedded image: %w", err)
		}
		return img, nil
	}

	pix, err := decodePixels(format, data, mW, mH)
	if err != nil {
		return nil, err
	}

	rgba := &image.NRGBA{
		Pix:    pix,
		Stride: int(mW * 4),
		Rect:   image.Rect(0, 0, int(mW), int(mH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mW || imgH > mH {
		return rgba, nil
	}
	return rgba.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	size := uint32(len(data))
	numBlocks := ((w + 3) / 4) * ((h + 3) / 4)
	expectedDXT1 := numBlocks * 8
	expectedDXT5 := numBlocks * 16
	expectedRGBA := w * h * 4

	switch {
	case format == texFormatRGBA8888 && size == expectedRGBA:
		utils.Debug("    Type: RGBA")
		return data, nil
	case format == texFormatR8 && size == w*h:
		utils.Debug("    Type: R8")
		pix := make([]byte, expectedRGBA)
		for k := 0; k < int(w*h); k++ {
			v := data[k]
			pix[k*4], pix[k*4+1], pix[k*4+2], pix[k*4+3] = v, v, v, 255
		}
		return pix, nil
	case format == texFormatRG88 && size == w*h*2:
		utils.Debug("    Type: RG88")
		pix := make([]byte, expectedRGBA)
		for k := 0; k < int(w*h); k++ {
			lum, alpha := data[k*2], data[k*2+1]
			pix[k*4], pix[k*4+1], pix[k*4+2], pix[k*4+3] = lum, lum, lum, alpha
		}
		return pix, nil
	case format == texFormatDXT5 || format == texFormatDXT3 || (size == expectedDXT5 && format != texFormatDXT1):
		utils.Debug("    Type: DXT5")
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case format == texFormatDXT1 || size == expectedDXT1:
		utils.Debug("    Type: DXT1")
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case size == expectedRGBA:
		return data, nil
	}
	return nil, fmt.Errorf("%w: format %d with %d bytes for %dx%d", ErrUnsupportedTexture, format, size, w, h)
}

type imageDecoder struct {
	magic  string // '?' matches any byte
	decode func(io.Reader) (image.Image, error)
}

// image.Decode is unusable while tga is linked: its registered sniffer
// matches any input. TARGA is picked by the caller.
var imageDecoders = []imageDecoder{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"RIFF????WEBPVP8", webp.Decode},
}

func matchMagic(magic string, head []byte) bool {
	if len(head) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != head[i] {
			return false
		}
	}
	return true
}

func decodeImage(r io.Reader, targa bool) (image.Image, error) {
	if targa {
		return tga.Decode(r)
	}
	br := bufio.NewReader(r)
	head, _ := br.Peek(16)
	for _, d := range imageDecoders {
		if matchMagic(d.magic, head) {
			return d.decode(br)
		}
	}
	return nil, image.ErrFormat
}

// LoadImage reads any supported image file into an NRGBA image.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		img, err = DecodeTex(f)
	} else {
		img, err = decodeImage(f, strings.EqualFold(filepath.Ext(path), ".tga"))
	}
	if err != nil {
		return nil, fmt.Errorf("convert: decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns img as an NRGBA image with its origin at (0,0).
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// LoadAll decodes paths in parallel. Images that fail are left out of the
// result and reported in the joined error.
func LoadAll(paths []string) (map[string]*image.NRGBA, error) {
	const maxConcurrency = 8
	sem := make(chan struct{}, maxConcurrency)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)
	out := make(map[string]*image.NRGBA, len(paths))

	for _, p := range paths {
		mu.Lock()
		_, seen := out[p]
		mu.Unlock()
		if seen {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-sem }()
			img, err := LoadImage(p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			out[p] = img
		}(p)
	}
	wg.Wait()

	utils.Debug("Loaded %d/%d images", len(out), len(paths))
	return out, errors.Join(errs...)
}
