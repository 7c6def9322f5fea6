package grba

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the scan at cfgPath once and again every time the file is written,
// until ctx is done. Failed runs are logged and the watch continues.
func Watch(ctx context.Context, cfgPath string) error {
	return watch(ctx, cfgPath, Run)
}

func watch(ctx context.Context, cfgPath string, run func(string) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	clean := filepath.Clean(cfgPath)
	// editors often replace the file, so watch the directory instead of the file
	if err := w.Add(filepath.Dir(clean)); err != nil {
		return err
	}
	rerun := func() {
		if err := run(clean); err != nil {
			Logf("run %s: %v", clean, err)
		}
	}
	rerun()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != clean {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				DebugLog("config %s changed (%s), re-running", clean, event.Op)
				rerun()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			Logf("watch %s: %v", clean, err)
		}
	}
}
