package cmd

import (
	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/deeplink"
	"github.com/varepato/pantrypal/internal/output"
)

var openCmd = &cobra.Command{
	Use:     "open <route>",
	Short:   "Open a deep-link route (items, expiring, expired)",
	GroupID: "system",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, ok := deeplink.Resolve(args[0])
		if !ok {
			// Unknown routes are ignored, not fatal.
			output.Warning("unknown route %q", args[0])
			return nil
		}

		ctx := cmd.Context()
		store, database, _, err := openStore(ctx)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()
		defer store.Wait()

		for _, a := range actions {
			store.Dispatch(ctx, a)
		}

		st := store.State()
		if frame, ok := topExpirationFrame(st); ok {
			output.Title("%s", frame.Kind.String())
			if len(frame.Rows) == 0 {
				output.Subtle("nothing here")
				return nil
			}
			printRows(frame.Rows)
			return nil
		}

		// Route landed on the root item list.
		output.Title("All places")
		for _, p := range st.Places {
			output.Info("  %-20s %d items", p.Name, len(p.Items))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
