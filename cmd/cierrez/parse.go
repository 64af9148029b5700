package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
	"github.com/jhoicas/cierres-api/internal/infrastructure/jsonschema"
	infrapdf "github.com/jhoicas/cierres-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cierres-api/internal/infrastructure/textsource"
	"github.com/jhoicas/cierres-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/cierres-api/internal/infrastructure/xmlexport"
)

type parseOptions struct {
	format      string
	output      string
	strict      bool
	stationCode string
	stationName string
	charset     string
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <archivo>",
		Short: "Parsea un reporte de Cierre Z y lo exporta",
		Example: `  cierrez parse z4821.txt
  cierrez parse z4821.pdf --format xlsx --output z4821.xlsx --station EST01
  cierrez parse z4821.txt --strict --charset iso-8859-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, opts, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "json", "formato de salida: json, xlsx, pdf o xml")
	f.StringVarP(&opts.output, "output", "o", "-", "archivo de salida (- para stdout)")
	f.BoolVar(&opts.strict, "strict", false, "falla si el reporte no trae número Z")
	f.StringVar(&opts.stationCode, "station", "", "código de estación para el encabezado y la huella")
	f.StringVar(&opts.stationName, "station-name", "", "nombre de la estación")
	f.StringVar(&opts.charset, "charset", "windows-1252", "charset si el archivo no es UTF-8 (windows-1252 o iso-8859-1)")
	return cmd
}

func runParse(cmd *cobra.Command, root *rootOptions, opts *parseOptions, path string) error {
	log := root.logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("leer %s: %w", path, err)
	}
	text, err := textsource.New(opts.charset).FromUpload(filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	pc := cierre.Parse(text)
	for _, issue := range pc.Errores {
		log.Debug().Int("linea", issue.Linea).Str("seccion", issue.Seccion).Str("motivo", issue.Motivo).Msg("línea descartada")
	}
	if err := pc.Validate(); err != nil {
		if opts.strict {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Warn().Str("archivo", path).Msg("el reporte no trae número Z")
	}

	out, err := render(cmd, opts, pc)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, out); err != nil {
		return err
	}
	if opts.output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d secciones, %d líneas descartadas -> %s\n",
			path, countSections(pc), len(pc.Errores), opts.output)
	}
	return nil
}

func render(cmd *cobra.Command, opts *parseOptions, pc *cierre.ParsedClosure) ([]byte, error) {
	format := strings.ToLower(opts.format)
	if format == "json" {
		return json.MarshalIndent(pc, "", "  ")
	}

	xmlBuilder := xmlexport.NewBuilder()
	doc := &appclosure.Document{
		StationCode: opts.stationCode,
		StationName: opts.stationName,
		Source:      "cli",
		CreatedAt:   time.Now(),
		Cierre:      pc,
	}
	huella, err := xmlBuilder.Fingerprint(doc)
	if err != nil {
		return nil, fmt.Errorf("calcular huella: %w", err)
	}
	doc.Huella = huella

	switch format {
	case appclosure.FormatXML:
		return xmlBuilder.RenderClosureXML(doc)
	case appclosure.FormatXLSX:
		return xlsx.NewExporter().RenderClosureXLSX(doc)
	case appclosure.FormatPDF:
		return infrapdf.NewMarotoClosureRenderer().RenderClosurePDF(cmd.Context(), doc)
	}
	return nil, fmt.Errorf("formato no soportado: %q", opts.format)
}

func writeOutput(stdout io.Writer, output string, data []byte) error {
	if output == "-" || output == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

func countSections(pc *cierre.ParsedClosure) int {
	n := 0
	for _, l := range []int{
		len(pc.Ventas), len(pc.Remitos), len(pc.Bajas), len(pc.RetencionesIIBB),
		len(pc.Cupones), len(pc.PagosElectronicos), len(pc.Tiradas), len(pc.Ingresos),
		len(pc.Egresos), len(pc.CombustibleCredito), len(pc.Tanques), len(pc.DeclaracionEmpleado),
	} {
		if l > 0 {
			n++
		}
	}
	return n
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <archivo.json>",
		Short: "Valida un cierre en JSON antes de importarlo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer %s: %w", args[0], err)
			}
			v, err := jsonschema.New()
			if err != nil {
				return err
			}
			if err := v.ValidateClosure(raw); err != nil {
				return err
			}
			var pc cierre.ParsedClosure
			if err := json.Unmarshal(raw, &pc); err != nil {
				return err
			}
			if err := pc.Validate(); err != nil {
				return err
			}
			root.logger().Debug().Int("numero_z", *pc.Header.NumeroZ).Msg("cierre válido")
			fmt.Fprintf(cmd.OutOrStdout(), "ok: cierre Z %d\n", *pc.Header.NumeroZ)
			return nil
		},
	}
}
