package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/aurora/engine/core"
)

// AssetManager indexes the asset directory, watches it for changes and
// dispatches loads to per-type loaders. The watcher goroutine publishes
// change events on Events so callers can hot-reload.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[ResourceType]Loader

	mutex sync.RWMutex

	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	done    chan struct{}
	closed  bool
}

func NewAssetManager() (*AssetManager, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &AssetManager{
		assets:  make(map[string]AssetInfo),
		loaders: make(map[ResourceType]Loader),
		watcher: watcher,
		events:  make(chan fsnotify.Event, 16),
		done:    make(chan struct{}),
	}, nil
}

// Initialize registers the built-in loaders, indexes assetsDir and
// starts watching it recursively.
func (am *AssetManager) Initialize(assetsDir string) error {
	am.registerLoader(ResourceTypeShader, &ShaderLoader{})
	am.registerLoader(ResourceTypeImage, &ImageLoader{})
	am.registerLoader(ResourceTypeModel, &ModelLoader{})
	am.registerLoader(ResourceTypeBitmapFont, &BitmapFontLoader{})

	go am.watch()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}
	core.LogInfo("asset manager watching '%s' (%d assets indexed)", assetsDir, am.Count())
	return nil
}

func (am *AssetManager) registerLoader(resourceType ResourceType, loader Loader) {
	am.loaders[resourceType] = loader
}

// Events delivers file change notifications for hot-reloading.
func (am *AssetManager) Events() <-chan fsnotify.Event {
	return am.events
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// LoadAsset loads the file at path through the loader matching its
// extension.
func (am *AssetManager) LoadAsset(path string, params any) (*Resource, error) {
	resourceType := determineAssetType(path)
	if resourceType == ResourceTypeNone {
		core.LogError("func LoadAsset - no loader for '%s'", path)
		return nil, core.ErrInvalidExtension
	}
	loader, exists := am.loaders[resourceType]
	if !exists {
		err := fmt.Errorf("func LoadAsset - no loader registered for asset type %d", resourceType)
		core.LogError(err.Error())
		return nil, err
	}

	resource, err := loader.Load(path, params)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *Resource) error {
	if resource == nil {
		return nil
	}
	loader, exists := am.loaders[resource.Type]
	if !exists {
		return nil
	}
	return loader.Unload(resource)
}

// Shutdown stops the watcher goroutine and closes the event stream.
func (am *AssetManager) Shutdown() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.closed {
		return
	}
	am.closed = true
	close(am.done)
}

func (am *AssetManager) watch() {
	for {
		select {
		case e, ok := <-am.watcher.Events:
			if !ok {
				return
			}
			if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.addRecursive(e.Name); err != nil {
						core.LogWarn("cannot watch new directory '%s': %s", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.index(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.forget(e.Name)
			}
			select {
			case am.events <- e:
			default:
				// A slow consumer drops events rather than stalling
				// the watcher.
			}

		case err, ok := <-am.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.watcher.Close()
			close(am.events)
			return
		}
	}
}

// addRecursive walks the directory, watches every subdirectory and
// indexes every recognized file.
func (am *AssetManager) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return am.watcher.Add(path)
		}
		am.index(path)
		return nil
	})
}

func (am *AssetManager) index(path string) {
	resourceType := determineAssetType(path)
	if resourceType == ResourceTypeNone {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
}

func (am *AssetManager) forget(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}

func determineAssetType(path string) ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".spv":
		return ResourceTypeShader
	case ".png", ".jpg", ".jpeg":
		return ResourceTypeImage
	case ".gltf", ".glb":
		return ResourceTypeModel
	case ".fnt":
		return ResourceTypeBitmapFont
	default:
		return ResourceTypeNone
	}
}
