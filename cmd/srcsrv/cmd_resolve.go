package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aledsdavies/srcsrv"
	"github.com/aledsdavies/srcsrv/core/types"
)

var outDir string

var resolveCmd = &cobra.Command{
	Use:   "resolve [stream-file] [source-path]",
	Short: "Resolve an indexed path to its retrieval method",
	Long: `Resolve looks up a source path (as recorded in the debug symbols) and
prints how the source text can be obtained. Nothing is downloaded or
executed; the command only reports what a debugger would do.`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&outDir, "out-dir", `C:\Debugger\Cached Sources`,
		"local extraction directory bound to %targ% (no trailing separator)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	streamFile, sourcePath := args[0], args[1]

	data, err := os.ReadFile(streamFile)
	if err != nil {
		return fmt.Errorf("failed to read stream file: %w", err)
	}

	stream, err := srcsrv.Parse(data)
	if err != nil {
		return err
	}
	logger.Debug("resolving path",
		zap.String("path", sourcePath),
		zap.String("out_dir", outDir))

	method, err := stream.Resolve(sourcePath, outDir)
	if err != nil {
		return err
	}

	switch m := method.(type) {
	case types.Download:
		fmt.Println("method: download")
		fmt.Printf("url: %s\n", m.URL)
	case types.ExecuteCommand:
		fmt.Println("method: execute command")
		fmt.Printf("command: %s\n", m.Command)
		fmt.Printf("target path: %s\n", m.TargetPath)
		for name, value := range m.Env {
			fmt.Printf("env: %s=%s\n", name, value)
		}
		if m.VersionCtrl != "" {
			fmt.Printf("version control: %s\n", m.VersionCtrl)
		}
		if m.ErrorPersistenceVersionCtrl != "" {
			fmt.Printf("error persistence: %s\n", m.ErrorPersistenceVersionCtrl)
		}
	}

	return nil
}
