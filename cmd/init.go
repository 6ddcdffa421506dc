package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/varepato/pantrypal/internal/config"
	"github.com/varepato/pantrypal/internal/db"
	"github.com/varepato/pantrypal/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a pantry store",
	Long:    `Creates the local .pantry directory, SQLite database and default config.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if _, err := os.Stat(filepath.Join(baseDir, ".pantry")); err == nil {
			output.Warning(".pantry/ already exists")
			return nil
		}

		database, err := db.Initialize(baseDir)
		if err != nil {
			output.Error("failed to initialize database: %v", err)
			return err
		}
		defer database.Close()

		cfg, _ := config.Load(baseDir)
		if err := config.Save(baseDir, cfg); err != nil {
			output.Warning("could not write config: %v", err)
		}

		fmt.Println("INITIALIZED .pantry/")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
