package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Se sobrescriben al compilar:
//
//	go build -ldflags "-X main.Version=1.2.0 -X main.BuildDate=2026-10-19" ./cmd/cierrez
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "cierrez")
			fmt.Fprintf(out, "Version:    %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		},
	}
}
