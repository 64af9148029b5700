package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/cierres-api/pkg/logger"
)

type rootOptions struct {
	verbose bool
}

func (o *rootOptions) logger() *logger.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	// stderr: stdout queda para el documento generado
	return logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cierrez",
		Short: "Parser de reportes de Cierre Z de estaciones de servicio",
		Long: `cierrez lee el reporte de Cierre Z que imprime el controlador de surtidores
(texto en UTF-8, Windows-1252 o ISO-8859-1, o el PDF impreso) y lo convierte en
JSON, XLSX, PDF o XML.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "muestra las líneas descartadas por el parser")

	cmd.AddCommand(newParseCmd(opts), newValidateCmd(opts), newVersionCmd())
	return cmd
}
