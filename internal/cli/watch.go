package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the bursts of write events editors emit on save.
const watchDebounce = 250 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "watch <blueprint>",
		Short: "Rebuild a blueprint whenever it changes",
		Long: `Watch builds the blueprint once, then rebuilds on every save until
interrupted. Build failures are reported and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("stat %s: %w", input, err)
			}

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			rebuild := func() {
				opts, err := flags.options(input)
				if err != nil {
					printError("%s", err)
					return
				}
				result, err := runner.Execute(cmd.Context(), opts)
				if err != nil {
					printError("build failed: %s", err)
					if result != nil {
						for _, d := range result.ConnectionDefects {
							printDetail("%s", d.Message)
						}
					}
					return
				}
				out := flags.outputPath(input)
				if err := os.WriteFile(out, result.Document, 0o644); err != nil {
					printError("write %s: %s", out, err)
					return
				}
				printSuccess("%s", time.Now().Format("15:04:05"))
				printFile(out)
				printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)
			}

			rebuild()

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory, not the file. Editors that save via
			// rename swap the inode out from under a file-level watch.
			dir := filepath.Dir(input)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			printInfo("watching %s", input)

			target, err := filepath.Abs(input)
			if err != nil {
				return err
			}

			var timer *time.Timer
			fire := make(chan struct{}, 1)

			for {
				select {
				case <-cmd.Context().Done():
					printInfo("stopped")
					return nil
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					abs, err := filepath.Abs(ev.Name)
					if err != nil || abs != target {
						continue
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
						continue
					}
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(watchDebounce, func() {
						select {
						case fire <- struct{}{}:
						default:
						}
					})
				case <-fire:
					rebuild()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					printWarning("watch error: %s", err)
				}
			}
		},
	}

	flags.register(cmd)
	return cmd
}
