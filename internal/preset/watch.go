package preset

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher reports changes to preset files under a base directory.
type Watcher struct {
	paths    Paths
	onChange func(string) // called with path that changed
	log      logrus.FieldLogger
	w        *fsnotify.Watcher
	done     chan struct{} // set by Start
}

// NewWatcher watches the base directory and its presets directory, when
// present. onChange is called from the watcher goroutine.
func NewWatcher(baseDir string, onChange func(string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	w := &Watcher{
		paths:    Paths{BaseDir: baseDir},
		onChange: onChange,
		log:      logrus.WithField("process", "preset-watcher"),
		w:        fw,
	}

	if err := fw.Add(baseDir); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", baseDir)
	}
	if fi, err := os.Stat(w.paths.PresetDir()); err == nil && fi.IsDir() {
		if err := fw.Add(w.paths.PresetDir()); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", w.paths.PresetDir())
		}
	}
	return w, nil
}

// Start begins watching in a goroutine until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.done = make(chan struct{})
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.w.Events:
				if !ok {
					return
				}
				w.handle(event)
			case err, ok := <-w.w.Errors:
				if !ok {
					return
				}
				w.log.WithError(err).Warn("file watcher error")
			}
		}
	}()
}

// Close stops the watcher and waits for the goroutine started by Start.
func (w *Watcher) Close() error {
	err := w.w.Close()
	if w.done != nil {
		<-w.done
	}
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	// a presets directory created after startup
	if event.Has(fsnotify.Create) && filepath.Clean(event.Name) == filepath.Clean(w.paths.PresetDir()) {
		if err := w.w.Add(event.Name); err != nil {
			w.log.WithError(err).Warn("could not watch presets directory")
		}
		return
	}
	if filepath.Ext(event.Name) != ".yaml" {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("preset file changed")
	if w.onChange != nil {
		w.onChange(event.Name)
	}
}
