// Package watch rebuilds stylesheets when their sources change.
//
// The watcher observes the configured paths recursively with fsnotify,
// ignores everything but Sass sources, and waits for a quiet period
// before calling back, so an editor writing several files produces a
// single rebuild:
//
//	w, err := watch.New(watch.FromConfig(cfg), logger)
//	if err != nil {
//	    return err
//	}
//	return w.Watch(ctx, func(ctx context.Context, changed []string) error {
//	    _, err := runner.Run(ctx, entries)
//	    return err
//	})
package watch
