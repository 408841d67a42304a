// Package assets loads models, animations and textures from the data directory.
package assets

import (
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelcraft/internal/engine/model"
	"github.com/Faultbox/voxelcraft/internal/engine/texture"
	"github.com/Faultbox/voxelcraft/internal/logger"
	"github.com/Faultbox/voxelcraft/pkg/formats"
)

// MaxBlockBones is the bone count above which a block shape is reported.
const MaxBlockBones = 10

// ErrNotFound is returned when no candidate file exists.
var ErrNotFound = errors.New("asset not found")

// Layout names the directories under the data root.
type Layout struct {
	Models   string
	Textures string
}

// DefaultLayout is the layout of the shipped data directory.
var DefaultLayout = Layout{Models: "models", Textures: "textures"}

// Manager resolves asset paths against a data root and caches file contents.
type Manager struct {
	root   string
	layout Layout
	cache  *Cache
	log    *zap.Logger

	mu     sync.Mutex
	models map[string]*model.Model
}

// NewManager creates a manager rooted at dir.
func NewManager(dir string, layout Layout) *Manager {
	return &Manager{
		root:   dir,
		layout: layout,
		cache:  NewCache(),
		log:    logger.Named("assets"),
		models: make(map[string]*model.Model),
	}
}

// Root returns the data root.
func (m *Manager) Root() string {
	return m.root
}

// Load reads a file relative to the data root.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}
	data, err := os.ReadFile(filepath.Join(m.root, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	m.cache.Set(path, data)
	return data, nil
}

// BlockModel loads models/<name>.json as a Bedrock block shape, falling back
// to models/<name>.obp.
func (m *Manager) BlockModel(name string) (*model.Model, error) {
	base := filepath.ToSlash(filepath.Join(m.layout.Models, name))
	mdl, err := m.model(base + ".json")
	if errors.Is(err, ErrNotFound) {
		mdl, err = m.model(base + ".obp")
	}
	if err != nil {
		return nil, err
	}
	if n := len(mdl.Bones); n > MaxBlockBones {
		m.log.Warn("block model has many bones",
			zap.String("model", name), zap.Int("bones", n), zap.Int("limit", MaxBlockBones))
	}
	return mdl, nil
}

// EntityModel loads a model by data-relative path as a block shape. The
// format follows the extension.
func (m *Manager) EntityModel(path string) (*model.Model, error) {
	return m.model(path)
}

// Animation loads a Bedrock animation file.
func (m *Manager) Animation(path string) (*formats.Animation, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	anim, err := formats.ParseBedrockAnimation(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing animation %s", path)
	}
	return anim, nil
}

// BlockImage decodes textures/<name>.png.
func (m *Manager) BlockImage(name string) (*image.NRGBA, error) {
	path := filepath.ToSlash(filepath.Join(m.layout.Textures, name+".png"))
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// BlockAtlas builds the texture array for the named block textures, index
// = block id. Empty names and textures that fail to load leave the slot
// blank.
func (m *Manager) BlockAtlas(names []string) *texture.Array {
	images := make([]*image.NRGBA, len(names))
	for id, name := range names {
		if name == "" {
			continue
		}
		img, err := m.BlockImage(name)
		if err != nil {
			m.log.Warn("block texture not loaded", zap.String("texture", name), zap.Error(err))
			continue
		}
		images[id] = img
	}
	return texture.BuildArray(images)
}

// model loads and memoises a model file. A Bedrock file that stops parsing
// part way keeps the bones read so far.
func (m *Manager) model(path string) (*model.Model, error) {
	m.mu.Lock()
	if mdl, ok := m.models[path]; ok {
		m.mu.Unlock()
		return mdl, nil
	}
	m.mu.Unlock()

	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}

	var mdl *model.Model
	switch filepath.Ext(path) {
	case ".obp":
		mdl, err = model.LoadOBP(data)
	default:
		mdl, err = model.LoadBedrock(data, model.BuildOptions{BlockShape: true})
		if formats.IsPartial(err) {
			m.log.Warn("model truncated, keeping parsed bones",
				zap.String("path", path), zap.Int("bones", len(mdl.Bones)), zap.Error(err))
			err = nil
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loading model %s", path)
	}

	m.mu.Lock()
	m.models[path] = mdl
	m.mu.Unlock()
	m.log.Debug("model loaded",
		zap.String("path", path), zap.Stringer("format", mdl.Format), zap.Int("bones", len(mdl.Bones)))
	return mdl, nil
}

// Close drops cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	m.models = make(map[string]*model.Model)
	m.mu.Unlock()
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
