package render

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rgal/internal/blob"
	"github.com/kk-code-lab/rgal/internal/photo"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	errLocatorReleased = errors.New("image is no longer available")
	errNoRoom          = errors.New("window too small")
)

type decodedImage struct {
	img image.Image
	err error
}

type scaledKey struct {
	loc           blob.Locator
	width, height int
}

// imageCache holds decoded and scaled images per locator. Entries for
// locators the session released are dropped by prune.
type imageCache struct {
	opener  blob.Opener
	decoded map[blob.Locator]decodedImage
	scaled  map[scaledKey]image.Image
}

func newImageCache(opener blob.Opener) *imageCache {
	return &imageCache{
		opener:  opener,
		decoded: make(map[blob.Locator]decodedImage),
		scaled:  make(map[scaledKey]image.Image),
	}
}

func (c *imageCache) decode(loc blob.Locator) (image.Image, error) {
	if d, ok := c.decoded[loc]; ok {
		return d.img, d.err
	}
	if c.opener == nil {
		return nil, errLocatorReleased
	}
	b, ok := c.opener.Open(loc)
	if !ok {
		return nil, errLocatorReleased
	}
	img, _, err := image.Decode(bytes.NewReader(b.Data))
	if err == nil {
		img = photo.Orient(img, photo.ReadExif(b.Data).Orientation)
	}
	c.decoded[loc] = decodedImage{img: img, err: err}
	return img, err
}

// fitted returns the image scaled to fit a box of cols x rows cells, where
// each cell holds two vertically stacked pixels.
func (c *imageCache) fitted(loc blob.Locator, cols, rows int) (image.Image, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errNoRoom
	}
	key := scaledKey{loc: loc, width: cols, height: rows}
	if img, ok := c.scaled[key]; ok {
		return img, nil
	}
	src, err := c.decode(loc)
	if err != nil {
		return nil, err
	}
	w, h := fitSize(src.Bounds().Dx(), src.Bounds().Dy(), cols, rows*2)
	if w == 0 || h == 0 {
		// resize treats a zero dimension as "keep the source size".
		return nil, errNoRoom
	}
	img := resize.Resize(uint(w), uint(h), src, resize.Bilinear)
	c.scaled[key] = img
	return img, nil
}

func (c *imageCache) prune(keep func(blob.Locator) bool) {
	for loc := range c.decoded {
		if !keep(loc) {
			delete(c.decoded, loc)
		}
	}
	for key := range c.scaled {
		if !keep(key.loc) {
			delete(c.scaled, key)
		}
	}
}

func (c *imageCache) len() int {
	return len(c.decoded)
}

// fitSize scales srcW x srcH into maxW x maxH keeping the aspect ratio.
func fitSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	return max(w, 1), max(h, 1)
}

// drawHalfBlocks paints img centred in the cell box at (x, y, cols, rows)
// using upper half blocks: foreground is the top pixel, background the bottom.
func (r *Renderer) drawHalfBlocks(img image.Image, x, y, cols, rows int, bg tcell.Color) {
	b := img.Bounds()
	cellRows := (b.Dy() + 1) / 2
	offX := x + (cols-b.Dx())/2
	offY := y + (rows-cellRows)/2

	for row := 0; row < cellRows; row++ {
		for col := 0; col < b.Dx(); col++ {
			top := pixelColor(img, b.Min.X+col, b.Min.Y+row*2)
			bottom := bg
			if row*2+1 < b.Dy() {
				bottom = pixelColor(img, b.Min.X+col, b.Min.Y+row*2+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			r.screen.SetContent(offX+col, offY+row, '▀', nil, style)
		}
	}
}

func pixelColor(img image.Image, x, y int) tcell.Color {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(cr>>8), int32(cg>>8), int32(cb>>8))
}
