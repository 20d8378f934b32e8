package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

// rightFootOffset maps a left-foot sensor ID to its right-foot counterpart.
const rightFootOffset = 99

// Heatmap is the per-pixel value distribution of one statistic over both
// feet, derived from the left-foot mask image. The right foot reuses the
// mask mirrored horizontally.
//
// Heatmaps support element-wise arithmetic so that callers can difference or
// scale distributions (e.g. left/right asymmetry) before rendering.
type Heatmap struct {
	w, h  int
	left  []float64 // row-major, w*h
	right []float64
}

// Mask locates the sensor regions in the mask image: a pixel whose gray
// value is n+1 belongs to sensor area n of the left foot.
type Mask struct {
	w, h    int
	regions map[int][]int // sensor ID -> pixel offsets (left foot orientation)
}

// LoadMask reads the left-foot mask PNG from path.
func LoadMask(path string) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding mask %s: %w", path, err)
	}
	return NewMask(img), nil
}

// NewMask indexes the sensor regions of a decoded left-foot mask image.
func NewMask(img image.Image) *Mask {
	b := img.Bounds()
	m := &Mask{w: b.Dx(), h: b.Dy(), regions: make(map[int][]int)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := int(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
			if v == 0 {
				continue // background
			}
			sensor := v - 1
			offset := (y-b.Min.Y)*m.w + (x - b.Min.X)
			m.regions[sensor] = append(m.regions[sensor], offset)
		}
	}
	return m
}

// NewHeatmap fills the per-pixel distribution for one statistic. Left-foot
// channels (0-98) paint the mask regions directly; right-foot channels
// (99-197) paint the mirrored regions.
func NewHeatmap(mask *Mask, stat domain.ChannelStat) *Heatmap {
	hm := &Heatmap{
		w:     mask.w,
		h:     mask.h,
		left:  make([]float64, mask.w*mask.h),
		right: make([]float64, mask.w*mask.h),
	}
	for ch, value := range stat {
		if ch < rightFootOffset {
			for _, off := range mask.regions[ch] {
				hm.left[off] = value
			}
		} else {
			for _, off := range mask.regions[ch-rightFootOffset] {
				hm.right[mirror(off, mask.w)] = value
			}
		}
	}
	return hm
}

// mirror flips a row-major pixel offset horizontally.
func mirror(off, w int) int {
	row, col := off/w, off%w
	return row*w + (w - 1 - col)
}

// Add returns the element-wise sum of two heatmaps.
func (hm *Heatmap) Add(other *Heatmap) *Heatmap { return hm.combine(other, 1) }

// Sub returns the element-wise difference of two heatmaps.
func (hm *Heatmap) Sub(other *Heatmap) *Heatmap { return hm.combine(other, -1) }

func (hm *Heatmap) combine(other *Heatmap, sign float64) *Heatmap {
	out := &Heatmap{w: hm.w, h: hm.h, left: make([]float64, len(hm.left)), right: make([]float64, len(hm.right))}
	for i := range hm.left {
		out.left[i] = hm.left[i] + sign*other.left[i]
		out.right[i] = hm.right[i] + sign*other.right[i]
	}
	return out
}

// Scale returns the heatmap multiplied by a scalar.
func (hm *Heatmap) Scale(factor float64) *Heatmap {
	out := &Heatmap{w: hm.w, h: hm.h, left: make([]float64, len(hm.left)), right: make([]float64, len(hm.right))}
	for i := range hm.left {
		out.left[i] = hm.left[i] * factor
		out.right[i] = hm.right[i] * factor
	}
	return out
}

// Range returns the minimum and maximum value across both feet.
func (hm *Heatmap) Range() (min, max float64) {
	min, max = hm.left[0], hm.left[0]
	for _, plane := range [][]float64{hm.left, hm.right} {
		for _, v := range plane {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// Render encodes both feet side by side as a PNG, colored on a cyan-magenta
// ramp over [min, max]. Pass min == max to use the heatmap's own range.
func (hm *Heatmap) Render(w io.Writer, min, max float64) error {
	if min == max {
		min, max = hm.Range()
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, hm.w*2, hm.h))
	paint := func(plane []float64, xOffset int) {
		for i, v := range plane {
			t := (v - min) / span
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			x, y := i%hm.w+xOffset, i/hm.w
			img.Set(x, y, color.RGBA{R: uint8(t * 255), G: uint8((1 - t) * 255), B: 255, A: 255})
		}
	}
	paint(hm.left, 0)
	paint(hm.right, hm.w)

	return png.Encode(w, img)
}

// WriteFile renders the heatmap to a PNG file.
func (hm *Heatmap) WriteFile(path string, min, max float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return hm.Render(f, min, max)
}
