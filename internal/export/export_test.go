package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pedarprobe/pedarprobe/pkg/domain"
)

func buildStatTree(t *testing.T) (*domain.Node, domain.LevelMap) {
	t.Helper()
	levels := domain.NewLevelMap("subject", "condition")
	root := domain.NewNode("root")
	for _, subject := range []string{"S1", "S2"} {
		s := domain.NewNode(subject)
		require.NoError(t, root.AddBranch(s))
		for _, condition := range []string{"fast walking", "slow walking"} {
			c := domain.NewNode(condition)
			require.NoError(t, s.AddBranch(c))
			c.SetComputed("sensor_peak", domain.ChannelStat{0: 1.5, 1: 2.5})
		}
	}
	return root, levels
}

func TestWriteStat(t *testing.T) {
	root, levels := buildStatTree(t)
	path := filepath.Join(t.TempDir(), "sensor_peak.xlsx")

	require.NoError(t, WriteStat(path, root, levels, "condition", "sensor_peak"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("sensor_peak")
	require.NoError(t, err)
	require.Len(t, rows, 5) // header + 4 condition nodes

	assert.Equal(t, []string{"condition", "0", "1"}, rows[0])
	assert.Equal(t, "S1 fast walking", rows[1][0])
	assert.Equal(t, "1.5", rows[1][1])
	assert.Equal(t, "2.5", rows[1][2])

	t.Run("missing statistic", func(t *testing.T) {
		err := WriteStat(filepath.Join(t.TempDir(), "x.xlsx"), root, levels, "condition", "sensor_pti")
		assert.Error(t, err)
	})

	t.Run("unknown level", func(t *testing.T) {
		err := WriteStat(filepath.Join(t.TempDir(), "x.xlsx"), root, levels, "gait", "sensor_peak")
		assert.ErrorIs(t, err, domain.ErrUnknownLevel)
	})
}

// testMask builds a 4x2 mask with sensor 0 in the left column pair and
// sensor 1 in the right column pair.
func testMask() *Mask {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		img.SetGray(0, y, color.Gray{Y: 1}) // sensor 0
		img.SetGray(3, y, color.Gray{Y: 2}) // sensor 1
	}
	return NewMask(img)
}

func TestHeatmap_FillAndMirror(t *testing.T) {
	mask := testMask()
	hm := NewHeatmap(mask, domain.ChannelStat{
		0:  10, // left foot sensor 0
		1:  20, // left foot sensor 1
		99: 30, // right foot sensor 0, mirrored
	})

	assert.Equal(t, 10.0, hm.left[0])  // (0,0)
	assert.Equal(t, 20.0, hm.left[3])  // (3,0)
	assert.Equal(t, 30.0, hm.right[3]) // mirrored from x=0 to x=3

	min, max := hm.Range()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 30.0, max)
}

func TestHeatmap_Arithmetic(t *testing.T) {
	mask := testMask()
	a := NewHeatmap(mask, domain.ChannelStat{0: 10})
	b := NewHeatmap(mask, domain.ChannelStat{0: 4})

	assert.Equal(t, 14.0, a.Add(b).left[0])
	assert.Equal(t, 6.0, a.Sub(b).left[0])
	assert.Equal(t, 5.0, a.Scale(0.5).left[0])
}

func TestHeatmap_Render(t *testing.T) {
	mask := testMask()
	hm := NewHeatmap(mask, domain.ChannelStat{0: 10, 1: 20})

	var buf bytes.Buffer
	require.NoError(t, hm.Render(&buf, 0, 0))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 2), img.Bounds())

	// The hottest pixel renders magenta-ish (high R, low G).
	r, g, _, _ := img.At(3, 0).RGBA()
	assert.Greater(t, r, g)
}
