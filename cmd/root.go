package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version string
	baseDir string
	dirFlag string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Local pantry inventory, expiration and shopping-list CLI",
	Long: `pantry - Track what food you have, where it lives, and when it expires.

Items are grouped into places (pantry, fridge, freezer). Expiring and
expired items surface in dedicated views, feed local reminders, and roll
up into a published summary snapshot.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "base directory (default: $PANTRY_DIR or cwd)")

	// Flags are matched case-insensitively.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "expiry", Title: "Expiration Commands:"},
		&cobra.Group{ID: "shop", Title: "Shopping Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

// initBaseDir resolves the base directory: --dir flag, then PANTRY_DIR
// (a local .env file may provide it), then the working directory.
func initBaseDir() {
	if dirFlag != "" {
		baseDir = dirFlag
		return
	}

	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load(".env")

	if dir := os.Getenv("PANTRY_DIR"); dir != "" {
		baseDir = dir
		return
	}

	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the pantry store
func getBaseDir() string {
	return baseDir
}
