// Package vram models the renderer's 300x216 indexed-color framebuffer,
// the core's in-memory mirror of the CD+G player's screen memory. Grounded
// on the teacher's internal/ppu.PPU.VRAM byte array and its bounds-checked
// Read8/Write8 register accessors, retargeted from a 64KB tile-data arena
// to a dense per-pixel palette-index grid.
package vram

const (
	Width  = 300
	Height = 216

	// BlockWidth/BlockHeight are the CD+G tile dimensions (spec §4.3).
	BlockWidth  = 6
	BlockHeight = 12

	// BlocksAcross/BlocksDown is the 50x18 tile grid.
	BlocksAcross = Width / BlockWidth
	BlocksDown   = Height / BlockHeight
)

// Block is one 6x12 grid of palette indices.
type Block [BlockHeight][BlockWidth]uint8

// VRAM is a dense 300x216 byte array of palette indices in [0,15].
type VRAM struct {
	pixels [Height][Width]uint8
}

// New returns a VRAM cleared to the background index.
func New(bgIndex uint8) *VRAM {
	v := &VRAM{}
	v.Clear(bgIndex)
	return v
}

// Clear fills every pixel with idx.
func (v *VRAM) Clear(idx uint8) {
	for y := 0; y < Height; y++ {
		row := &v.pixels[y]
		for x := range row {
			row[x] = idx
		}
	}
}

// SetPixel writes idx at (x,y); out-of-range writes are silently discarded.
func (v *VRAM) SetPixel(x, y int, idx uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	v.pixels[y][x] = idx
}

// GetPixel reads the pixel at (x,y); out-of-range reads return 0.
func (v *VRAM) GetPixel(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return v.pixels[y][x]
}

// BlockOrigin returns the pixel origin (x,y) for a tile-aligned block
// coordinate.
func BlockOrigin(blockX, blockY int) (x, y int) {
	return blockX * BlockWidth, blockY * BlockHeight
}

// ReadBlock returns the current contents of the 6x12 block at
// (blockX, blockY).
func (v *VRAM) ReadBlock(blockX, blockY int) Block {
	var b Block
	ox, oy := BlockOrigin(blockX, blockY)
	for row := 0; row < BlockHeight; row++ {
		for col := 0; col < BlockWidth; col++ {
			b[row][col] = v.GetPixel(ox+col, oy+row)
		}
	}
	return b
}

// WriteBlock writes a full 6x12 indexed grid at the given tile-aligned
// block coordinate. blockX in [0,49], blockY in [0,17].
func (v *VRAM) WriteBlock(blockX, blockY int, grid Block) {
	ox, oy := BlockOrigin(blockX, blockY)
	for row := 0; row < BlockHeight; row++ {
		for col := 0; col < BlockWidth; col++ {
			v.SetPixel(ox+col, oy+row, grid[row][col])
		}
	}
}

// BlockAt returns the block coordinate containing pixel (x,y).
func BlockAt(x, y int) (blockX, blockY int) {
	return x / BlockWidth, y / BlockHeight
}
