package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aledsdavies/srcsrv"
	"github.com/aledsdavies/srcsrv/runtime/lexer"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [stream-file]",
	Short: "Print the sections, variables and indexed paths of a stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read stream file: %w", err)
	}

	stream, err := srcsrv.Parse(data)
	if err != nil {
		return err
	}
	logger.Debug("parsed stream",
		zap.Int("version", stream.Version()),
		zap.Int("sections", len(stream.Sections())),
		zap.Int("rows", len(stream.Rows())))

	for _, section := range stream.Sections() {
		fmt.Printf("[%s]\n", section.Name)
		switch section.Name {
		case lexer.SectionIni, lexer.SectionVariables:
			for _, line := range section.Body {
				fmt.Printf("  %s\n", line)
			}
		case lexer.SectionSourceFiles:
			fmt.Printf("  %d indexed files\n", len(section.Body))
		}
	}

	fmt.Println()
	fmt.Println("indexed paths:")
	for _, row := range stream.Rows() {
		fmt.Printf("  %s\n", row.Path)
	}

	if descs := stream.ErrorPersistenceCommandOutputStrings(); len(descs) > 0 {
		fmt.Println()
		fmt.Println("error persistence command output strings:")
		for _, desc := range descs {
			fmt.Printf("  %q\n", desc)
		}
	}

	return nil
}
