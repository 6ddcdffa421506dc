package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/output"
)

const guideText = `# pantry guide

## Getting started

    pantry init
    pantry place add Fridge
    pantry item add Fridge Milk --qty 2 --expires +7d

## Day to day

- ` + "`pantry expiring`" + ` shows what needs eating; ` + "`pantry expired`" + ` shows
  what didn't make it.
- ` + "`pantry cleanup --shop`" + ` removes expired items and puts them on the
  shopping list.
- ` + "`pantry item qty Fridge Milk 0 --shop`" + ` records that you used the
  last of something and queues a repurchase.
- ` + "`pantry shop list`" + `, ` + "`pantry shop done Milk`" + ` manage the list at the store.

## Reminders

Items with an expiration date get two reminders: one a couple of days
ahead and one on the day. Run ` + "`pantry remind`" + ` (from cron, a shell
profile, whatever) to deliver due ones.

## The widget snapshot

Every mutation republishes ` + "`.pantry/widget.json`" + ` with total, expiring
and expired counts. ` + "`pantry widget --watch`" + ` tails it; status bars and
scripts can read the JSON directly. ` + "`pantry refresh`" + ` rebuilds it from
scratch, handy as a nightly cron entry.

## Relocating the store

Set ` + "`PANTRY_DIR`" + ` (a ` + "`.env`" + ` file works) or pass ` + "`--dir`" + ` to keep the
data somewhere other than the working directory.
`

var guideCmd = &cobra.Command{
	Use:     "guide",
	Short:   "Show the usage guide",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		rendered, err := output.RenderMarkdown(guideText)
		if err != nil {
			// Fall back to the raw text rather than failing.
			fmt.Print(guideText)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
