// Package snapshot draws the final board of a match into a PNG.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/hoshinonyaruko/snake-duel/theme"
)

// blurSigma 撞死的蛇做模糊处理
const blurSigma = 3.5

// Render draws state at blockSize pixels per cell. Crashed snakes are blurred.
func Render(state *structs.GameState, th theme.Theme, blockSize int) image.Image {
	width := state.Width * blockSize
	height := state.Height * blockSize

	// 创建总的画布
	finalDC := gg.NewContext(width, height)
	finalDC.SetRGB(1, 1, 1)
	finalDC.Clear()
	renderGrid(finalDC, width, height, blockSize)

	if state.Apple != nil {
		fillCell(finalDC, *state.Apple, th.AppleColor, blockSize)
	}

	// 每条蛇单独一层并行绘制，按玩家顺序合并
	layers := make([]image.Image, len(state.Snakes))
	var wg sync.WaitGroup
	for i := range state.Snakes {
		wg.Add(1)
		go func(i int, sn structs.Snake) {
			defer wg.Done()
			dc := gg.NewContext(width, height)
			for _, pos := range sn.Positions {
				fillCell(dc, pos, th.SnakeColor(sn.Player), blockSize)
			}
			var img image.Image = dc.Image()
			if sn.Death != structs.DeathNone {
				img = imaging.Blur(img, blurSigma)
			}
			layers[i] = img
		}(i, state.Snakes[i])
	}
	wg.Wait()

	for _, layer := range layers {
		finalDC.DrawImage(layer, 0, 0)
	}
	return finalDC.Image()
}

// Save renders state and writes it to <dir>/<match id>.png, returning the path.
func Save(state *structs.GameState, th theme.Theme, blockSize int, dir string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	fileName := filepath.Join(dir, state.ID+".png")
	if err := imaging.Save(Render(state, th, blockSize), fileName); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return fileName, nil
}

func fillCell(dc *gg.Context, pos structs.Position, c tcell.Color, blockSize int) {
	r, g, b := c.RGB()
	if r < 0 {
		// 没有对应的RGB值，使用黑色表示该位置
		r, g, b = 0, 0, 0
	}
	dc.SetRGB255(int(r), int(g), int(b))
	dc.DrawRectangle(float64(pos.X*blockSize), float64(pos.Y*blockSize), float64(blockSize), float64(blockSize))
	dc.Fill()
}

func renderGrid(dc *gg.Context, width, height, blockSize int) {
	dc.SetRGB(0.9, 0.9, 0.9)
	for x := 0; x <= width; x += blockSize {
		dc.DrawLine(float64(x), 0, float64(x), float64(height))
		dc.Stroke()
	}
	for y := 0; y <= height; y += blockSize {
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}
}
