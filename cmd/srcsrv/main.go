// Command srcsrv inspects srcsrv source-indexing streams extracted from
// Windows PDB files. It plays the caller role around the library: it reads
// the stream bytes from disk and prints what the interpreter decides, but
// never downloads or executes anything.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "srcsrv",
	Short: "Inspect and resolve srcsrv source-indexing streams",
	Long: `srcsrv interprets the source-indexing stream from a Windows PDB file.

The stream bytes must already be extracted to a file (for example with a PDB
dumper). srcsrv can list the stream's sections, variables and indexed paths,
or resolve a single path to its retrieval method: a download URL or the
command that produces the file locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(dumpCmd, resolveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
