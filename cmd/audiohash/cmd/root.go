package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wbtb/audiohash"
	"github.com/wbtb/audiohash/internal/digestcache"
)

var rootCmd = &cobra.Command{
	Use:   "audiohash",
	Short: "Rename audio files to content hashes and write a manifest",
	Long: `Renames every matching file in a directory to a prefix of its SHA-256
content digest and writes the sorted list of final names to a JSON manifest.

Already-hashed files are left untouched, so re-running is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runRename,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/audiohash/config.yaml)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "directory to process (default: audio)")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "manifest output path (default: filelist.json)")
	rootCmd.PersistentFlags().String("ext", "", "file extension to process (default: .mp3)")
	rootCmd.PersistentFlags().IntP("prefix-len", "k", 0, "digest prefix length in hex chars (default: 12)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "hash every file, ignore the digest cache")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	viper.BindPFlag("ext", rootCmd.PersistentFlags().Lookup("ext"))
	viper.BindPFlag("prefix_len", rootCmd.PersistentFlags().Lookup("prefix-len"))
	viper.BindPFlag("no_cache", rootCmd.PersistentFlags().Lookup("no-cache"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("AUDIOHASH")
	viper.AutomaticEnv()
	viper.SetDefault("dir", "audio")
	viper.SetDefault("manifest", "filelist.json")
	viper.SetDefault("ext", audiohash.DefaultExtension)
	viper.SetDefault("prefix_len", audiohash.DefaultPrefixLen)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "audiohash")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "audiohash")
	}
	return ".audiohash"
}

// newLogger returns the progress logger. Progress goes to stdout; cobra
// prints fatal errors to stderr on its own.
func newLogger() *log.Logger {
	logger := log.New(os.Stdout)
	if viper.GetBool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runRename(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	opts := []audiohash.Option{
		audiohash.WithManifestPath(viper.GetString("manifest")),
		audiohash.WithExtension(viper.GetString("ext")),
		audiohash.WithPrefixLen(viper.GetInt("prefix_len")),
		audiohash.WithLogger(logger),
	}
	if !viper.GetBool("no_cache") {
		opts = append(opts, audiohash.WithDigestCache(digestcache.Open(digestcache.DefaultPath())))
	}

	r := audiohash.New(viper.GetString("dir"), opts...)

	res, err := r.Run()
	if err != nil {
		return err
	}

	logger.Info("done",
		"found", res.Found,
		"renamed", res.Renamed,
		"skipped", res.Skipped,
		"hashed", humanize.Bytes(uint64(res.BytesHashed)),
	)
	logger.Info("manifest written", "path", viper.GetString("manifest"), "entries", len(res.Entries))
	return nil
}
