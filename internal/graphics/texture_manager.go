package graphics

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Textures is the process-wide texture cache.
var Textures = NewTextureCache()

type textureEntry struct {
	id   uint32
	refs int
}

// TextureCache shares uploaded textures by key. Each Acquire must be paired
// with a Release; the texture is deleted when the last holder lets go.
// Acquire and Release touch GL and belong on the render thread.
type TextureCache struct {
	mu      sync.Mutex
	entries map[string]*textureEntry

	upload func(*image.RGBA) (uint32, error)
	free   func(uint32)
}

// NewTextureCache returns an empty cache backed by OpenGL.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		entries: make(map[string]*textureEntry),
		upload:  UploadRGBA,
		free:    func(id uint32) { gl.DeleteTextures(1, &id) },
	}
}

// Acquire returns the texture stored under key. On a miss it calls load and
// uploads the result.
func (c *TextureCache) Acquire(key string, load func() (*image.RGBA, error)) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.refs++
		return e.id, nil
	}
	img, err := load()
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", key, err)
	}
	id, err := c.upload(img)
	if err != nil {
		return 0, fmt.Errorf("texture %s: %w", key, err)
	}
	c.entries[key] = &textureEntry{id: id, refs: 1}
	return id, nil
}

// Release drops one hold on key. Unknown keys are ignored.
func (c *TextureCache) Release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	c.free(e.id)
	delete(c.entries, key)
}

// Len returns the number of resident textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
