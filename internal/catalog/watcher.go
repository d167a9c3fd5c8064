package catalog

import (
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a catalog file whenever it changes on disk and hands the
// fresh catalog to onReload. Editors often replace files atomically, so
// rename/remove events re-add the path to the underlying watcher.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Catalog)
	done     chan struct{}
}

// Watch starts watching path. onReload is called from the watcher goroutine;
// hosts that need serialized access (the TUI) must forward it to their own
// event loop.
func Watch(path string, onReload func(*Catalog)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Give the editor time to finish the atomic replace.
				time.Sleep(200 * time.Millisecond)
				if _, err := os.Stat(w.path); os.IsNotExist(err) {
					log.Printf("catalog file removed and not replaced, keeping current catalog")
					continue
				}
				if err := w.watcher.Add(w.path); err != nil {
					log.Printf("re-watching catalog file: %v", err)
				}
			} else {
				time.Sleep(100 * time.Millisecond)
			}
			c, err := Load(w.path)
			if err != nil {
				log.Printf("reloading catalog: %v", err)
				continue
			}
			w.onReload(c)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("catalog watcher error: %v", err)
		}
	}
}

// Close stops the watcher goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
