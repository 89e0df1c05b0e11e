// Package main provides the reflector binary.
//
// The binary hosts development tooling around the embeddable library: a
// demo command that serves synthetic inspector data for front-end work.
// Real applications embed pkg/reflector directly instead.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reflector-dev/reflector-go/internal/cli/demo"
	"github.com/reflector-dev/reflector-go/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reflector",
		Short:         "Reflector - scene explorer and frame profiler for real-time apps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(demo.NewDemoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Reflector %s\n", version.String())
		},
	}
}
