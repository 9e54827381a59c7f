package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wbtb/audiohash"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manifest entries",
	Long:  "Print the filenames recorded in the manifest, one per line.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := audiohash.ReadManifest(viper.GetString("manifest"))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	if m.Len() == 0 {
		fmt.Println("(no entries)")
		return nil
	}

	for _, name := range m.Entries() {
		fmt.Println(name)
	}
	return nil
}
