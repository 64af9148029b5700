// Package xmlexport genera el XML <CierreZ> y su huella SHA-256 sobre la forma canónica C14N.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

var _ appclosure.XMLRenderer = (*Builder)(nil)

// Builder implementa closure.XMLRenderer con etree.
type Builder struct{}

// NewBuilder construye el generador de XML.
func NewBuilder() *Builder { return &Builder{} }

// RenderClosureXML devuelve el documento indentado con declaración XML. Incluye id,
// huella y fecha de carga cuando el cierre está persistido.
func (b *Builder) RenderClosureXML(doc *appclosure.Document) ([]byte, error) {
	if doc == nil || doc.Cierre == nil {
		return nil, fmt.Errorf("xml: cierre vacío")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := buildRoot(x, doc)
	if doc.ClosureID != "" {
		root.CreateAttr("id", doc.ClosureID)
	}
	if doc.Source != "" {
		root.CreateAttr("origen", doc.Source)
	}
	if !doc.CreatedAt.IsZero() {
		root.CreateAttr("cargado", doc.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if doc.Huella != "" {
		root.CreateAttr("huella", doc.Huella)
	}
	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

// Fingerprint SHA-256 (hex) de la forma canónica del cierre, sin los datos de la carga.
func (b *Builder) Fingerprint(doc *appclosure.Document) (string, error) {
	if doc == nil || doc.Cierre == nil {
		return "", fmt.Errorf("xml: cierre vacío")
	}
	x := etree.NewDocument()
	buildRoot(x, doc)
	raw, err := x.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("xml: serializar: %w", err)
	}
	canon, err := canonicalize(raw)
	if err != nil {
		return "", fmt.Errorf("xml: c14n: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func buildRoot(x *etree.Document, doc *appclosure.Document) *etree.Element {
	pc := doc.Cierre
	h := pc.Header

	root := x.CreateElement("CierreZ")
	if h.NumeroZ != nil {
		root.CreateAttr("numero", strconv.Itoa(*h.NumeroZ))
	}
	if doc.StationCode != "" {
		root.CreateAttr("estacion", doc.StationCode)
	}

	cab := root.CreateElement("Cabecera")
	cab.CreateElement("FechaTurno").SetText(h.FechaTurno)
	cab.CreateElement("HoraInicio").SetText(h.HoraInicio)
	cab.CreateElement("HoraFin").SetText(h.HoraFin)
	cab.CreateElement("CerradoPor").SetText(h.CerradoPor)
	if doc.StationName != "" {
		cab.CreateElement("Estacion").SetText(doc.StationName)
	}

	tot := root.CreateElement("Totales")
	for _, t := range []struct {
		tag string
		v   float64
	}{
		{"Ventas", h.TotalVentas},
		{"Remitos", h.TotalRemitos},
		{"Gastos", h.TotalGastos},
		{"ARendir", h.TotalARendir},
		{"Faltante", h.TotalFaltante},
		{"PagosElectronicos", h.TotalPagosElectronicos},
		{"CombustibleCredito", h.TotalCombustibleCredito},
		{"Cupones", h.TotalCupones},
		{"Tiradas", h.TotalTiradas},
	} {
		tot.CreateElement(t.tag).SetText(amount(t.v))
	}

	secs := root.CreateElement("Secciones")
	lineSection(secs, cierre.SectionSales, pc.Ventas)
	if len(pc.Remitos) > 0 {
		s := section(secs, cierre.SectionDeliveries)
		for _, r := range pc.Remitos {
			it := s.CreateElement("Remito")
			it.CreateAttr("codigo", r.Codigo)
			it.CreateAttr("cliente", r.Cliente)
			it.CreateAttr("monto", amount(r.Monto))
		}
	}
	lineSection(secs, cierre.SectionWriteOffs, pc.Bajas)
	lineSection(secs, cierre.SectionTaxWithholding, pc.RetencionesIIBB)
	lineSection(secs, cierre.SectionCoupons, pc.Cupones)
	lineSection(secs, cierre.SectionEPayment, pc.PagosElectronicos)
	lineSection(secs, cierre.SectionDrawings, pc.Tiradas)
	cashSection(secs, cierre.SectionInflows, pc.Ingresos)
	lineSection(secs, cierre.SectionCreditFuel, pc.CombustibleCredito)
	cashSection(secs, cierre.SectionOutflows, pc.Egresos)
	if len(pc.Tanques) > 0 {
		s := section(secs, cierre.SectionTanks)
		for _, t := range pc.Tanques {
			it := s.CreateElement("Tanque")
			it.CreateAttr("numero", t.Tanque)
			it.CreateAttr("producto", t.Producto)
			it.CreateAttr("volumen", decimal.NewFromFloat(t.Volumen).StringFixed(3))
		}
	}
	if len(pc.DeclaracionEmpleado) > 0 {
		s := section(secs, cierre.SectionEmployeeDeclaration)
		for _, d := range pc.DeclaracionEmpleado {
			it := s.CreateElement("Declarado")
			it.CreateAttr("campo", d.Campo)
			it.CreateAttr("monto", amount(d.Monto))
		}
	}
	return root
}

func section(parent *etree.Element, s cierre.Section) *etree.Element {
	el := parent.CreateElement("Seccion")
	el.CreateAttr("nombre", s.String())
	return el
}

func lineSection(parent *etree.Element, s cierre.Section, items []cierre.LineItem) {
	if len(items) == 0 {
		return
	}
	el := section(parent, s)
	for _, it := range items {
		e := el.CreateElement("Item")
		e.CreateAttr("descripcion", it.Descripcion)
		e.CreateAttr("monto", amount(it.Monto))
	}
}

func cashSection(parent *etree.Element, s cierre.Section, items []cierre.CashMovement) {
	if len(items) == 0 {
		return
	}
	el := section(parent, s)
	for _, it := range items {
		e := el.CreateElement("Movimiento")
		e.CreateAttr("comprobante", it.Comprobante)
		e.CreateAttr("descripcion", it.Descripcion)
		e.CreateAttr("monto", amount(it.Monto))
	}
}

func amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
