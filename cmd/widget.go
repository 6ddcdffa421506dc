package cmd

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/config"
	"github.com/varepato/pantrypal/internal/output"
	"github.com/varepato/pantrypal/internal/widget"
)

var widgetCmd = &cobra.Command{
	Use:     "widget",
	Short:   "Render the published summary snapshot",
	Long:    `Renders the aggregate snapshot the widget consumes. With --watch, re-renders whenever the snapshot slot is republished.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load(getBaseDir())
		store := widget.FileStore{Path: cfg.WidgetPath}

		if err := renderSnapshot(store); err != nil {
			output.Error("%v", err)
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return nil
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			output.Error("watch: %v", err)
			return err
		}
		defer watcher.Close()

		// Watch the directory: the atomic rename that publishes a
		// snapshot replaces the file, so watching the file itself would
		// lose the handle after the first publish.
		if err := watcher.Add(filepath.Dir(cfg.WidgetPath)); err != nil {
			output.Error("watch: %v", err)
			return err
		}
		output.Subtle("watching %s (ctrl-c to stop)", cfg.WidgetPath)

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Base(event.Name) != filepath.Base(cfg.WidgetPath) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if err := renderSnapshot(store); err != nil {
					output.Warning("%v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				output.Warning("watch: %v", err)
			}
		}
	},
}

func renderSnapshot(store widget.FileStore) error {
	snap, err := store.Load()
	if err != nil {
		return err
	}

	output.Title("Pantry summary")
	output.Info("  %d items tracked", snap.TotalItems)
	if snap.Expired > 0 {
		output.Warning("  %d expired", snap.Expired)
	}
	if snap.ExpiringSoon > 0 {
		output.Info("  %d expiring soon", snap.ExpiringSoon)
	}
	if !snap.UpdatedAt.IsZero() {
		output.Subtle("  updated %s", snap.UpdatedAt.Format("2006-01-02 15:04"))
	}
	output.Subtle("  opens: %s  next refresh: %s",
		widget.TargetRoute(snap), widget.NextRefresh(time.Now()).Format("Jan 2 15:04"))
	return nil
}

func init() {
	widgetCmd.Flags().Bool("watch", false, "re-render on snapshot changes")
	rootCmd.AddCommand(widgetCmd)
}
