package cierre_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reporte completo (testdata/cierre_z.txt)
// ──────────────────────────────────────────────────────────────────────────────

func loadFixture(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/cierre_z.txt")
	require.NoError(t, err, "debe existir el reporte de ejemplo")
	return string(b)
}

func TestParse_ReporteCompleto_Cabecera(t *testing.T) {
	pc := cierre.Parse(loadFixture(t))

	require.NoError(t, pc.Validate())
	require.NotNil(t, pc.Header.NumeroZ)
	assert.Equal(t, 4821, *pc.Header.NumeroZ)
	assert.Equal(t, "17/10/2026", pc.Header.FechaTurno)
	assert.Equal(t, "06:00", pc.Header.HoraInicio)
	assert.Equal(t, "14:00", pc.Header.HoraFin)
	assert.Equal(t, "Gómez, Laura", pc.Header.CerradoPor)

	assert.InDelta(t, 1245300.50, pc.Header.TotalVentas, 1e-9)
	assert.InDelta(t, 8700.00, pc.Header.TotalRemitos, 1e-9)
	assert.InDelta(t, 1520.00, pc.Header.TotalGastos, 1e-9)
	assert.InDelta(t, 98230.15, pc.Header.TotalARendir, 1e-9)
	assert.InDelta(t, -35.15, pc.Header.TotalFaltante, 1e-9)
	assert.InDelta(t, 43210.00, pc.Header.TotalPagosElectronicos, 1e-9)
	assert.InDelta(t, 12000.00, pc.Header.TotalCombustibleCredito, 1e-9)
	assert.InDelta(t, 215300.00, pc.Header.TotalCupones, 1e-9)
	assert.InDelta(t, 90000.00, pc.Header.TotalTiradas, 1e-9)
}

func TestParse_ReporteCompleto_Secciones(t *testing.T) {
	pc := cierre.Parse(loadFixture(t))

	assert.Equal(t, []cierre.LineItem{
		{Descripcion: "NAFTA SUPER", Monto: 15230.50},
		{Descripcion: "INFINIA DIESEL", Monto: 22410.00},
		{Descripcion: "GNC", Monto: 0},
	}, pc.Ventas, "orden de origen y '-' como monto cero")

	assert.Equal(t, []cierre.DeliveryNote{
		{Codigo: "R00123", Cliente: "Transportes del Sur", Monto: 4500.00},
		{Codigo: "R00124", Cliente: "Agro La Pampa SA", Monto: 4200.00},
	}, pc.Remitos)

	assert.Equal(t, []cierre.LineItem{
		{Descripcion: "MERCADOPAGO", Monto: 20000.00},
		{Descripcion: "QR MODO", Monto: 23210.00},
	}, pc.PagosElectronicos)

	assert.Equal(t, []cierre.CashMovement{
		{Comprobante: "1021", Descripcion: "Cambio inicial de caja", Monto: 5000.00},
	}, pc.Ingresos)
	assert.Equal(t, []cierre.CashMovement{
		{Comprobante: "2045", Descripcion: "Compra de insumos limpieza", Monto: 1520.00},
	}, pc.Egresos)

	assert.Equal(t, []cierre.TankReading{
		{Tanque: "1", Producto: "NAFTA SUPER", Volumen: 3500.0},
		{Tanque: "2", Producto: "INFINIA DIESEL", Volumen: 4100.5},
	}, pc.Tanques)

	assert.Equal(t, []cierre.Declaration{
		{Campo: "efectivo_declarado", Monto: 98200.00},
		{Campo: "cupones_tarjeta", Monto: 215300.00},
	}, pc.DeclaracionEmpleado)

	assert.Equal(t, []cierre.LineItem{{Descripcion: "DERRAME SURTIDOR 3", Monto: 150.00}}, pc.Bajas)
	assert.Equal(t, []cierre.LineItem{{Descripcion: "RET IIBB BUENOS AIRES", Monto: 320.40}}, pc.RetencionesIIBB)
	assert.Equal(t, []cierre.LineItem{{Descripcion: "VISA CREDITO", Monto: 1200.00}}, pc.Cupones)
	assert.Equal(t, []cierre.LineItem{{Descripcion: "TIRADA 1 CAJA FUERTE", Monto: 50000.00}}, pc.Tiradas)
	assert.Equal(t, []cierre.LineItem{{Descripcion: "CTA CTE MUNICIPIO", Monto: 12000.00}}, pc.CombustibleCredito)
	assert.Len(t, pc.Resumen, 9, "solo los totales libres quedan en el resumen")
	assert.Equal(t, 18, pc.ItemCount())
}

func TestParse_ReporteCompleto_Errores(t *testing.T) {
	pc := cierre.Parse(loadFixture(t))

	var textos []string
	for _, e := range pc.Errores {
		assert.NotZero(t, e.Linea)
		assert.NotEmpty(t, e.Motivo)
		textos = append(textos, e.Texto)
	}
	assert.Equal(t, []string{
		"LUBRICANTES",
		"REMITO SIN MONTO",
		"Ajuste sin comprobante 100.00",
		"3   NAFTA SUPER   KEROSENE   1200.0",
		"sin separador",
	}, textos)
	assert.Equal(t, "TANQUES", pc.Errores[3].Seccion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios puntuales
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_EscenarioA_NumeroZ(t *testing.T) {
	pc := cierre.Parse("CIERRE Z\nNumero: 4821\n")
	require.NotNil(t, pc.Header.NumeroZ)
	assert.Equal(t, 4821, *pc.Header.NumeroZ)
}

func TestParse_EscenarioB_VentaPorProducto(t *testing.T) {
	pc := cierre.Parse("VENTAS POR PRODUCTO\nNAFTA SUPER          15230.50\n")
	require.Len(t, pc.Ventas, 1)
	assert.Equal(t, cierre.LineItem{Descripcion: "NAFTA SUPER", Monto: 15230.50}, pc.Ventas[0])
}

func TestParse_EscenarioC_Remito(t *testing.T) {
	pc := cierre.Parse("REMITOS\nR00123   Transportes del Sur   4500.00\n")
	require.Len(t, pc.Remitos, 1)
	assert.Equal(t, cierre.DeliveryNote{Codigo: "R00123", Cliente: "Transportes del Sur", Monto: 4500.00}, pc.Remitos[0])
}

func TestParse_EscenarioD_TotalARendirDesdeResumen(t *testing.T) {
	pc := cierre.Parse("CIERRE Z\nNumero: 1\n-----\nTOTAL A RENDIR            98230.15\n")
	assert.InDelta(t, 98230.15, pc.Header.TotalARendir, 1e-9)
}

func TestParse_EscenarioE_TanqueKerosene(t *testing.T) {
	pc := cierre.Parse("TANQUES\n1   NAFTA SUPER   KEROSENE   1200.0\n")
	assert.Empty(t, pc.Tanques)
	require.Len(t, pc.Errores, 1)
}

func TestParse_SinNumeroZ(t *testing.T) {
	pc := cierre.Parse("CIERRE Z\nDesde: 17/10/2026 06:00\nTOTAL A RENDIR 10\n")
	assert.Nil(t, pc.Header.NumeroZ)
	assert.ErrorIs(t, pc.Validate(), domain.ErrMissingClosureNumber)
	assert.InDelta(t, 10.0, pc.Header.TotalARendir, 1e-9, "el resto del cierre se completa igual")
}

func TestParse_NumeroZNoNumerico(t *testing.T) {
	pc := cierre.Parse("CIERRE Z\nNumero: Z-12\n")
	assert.Nil(t, pc.Header.NumeroZ)
	require.Len(t, pc.Errores, 1)
	assert.Equal(t, "RESUMEN", pc.Errores[0].Seccion)
}

func TestParse_NumeroZConSufijo(t *testing.T) {
	for _, line := range []string{"Numero: 4821-A", "Numero: 4821/1", "Numero: 4821 (T2)"} {
		pc := cierre.Parse("CIERRE Z\n" + line + "\n")
		require.NotNil(t, pc.Header.NumeroZ, line)
		assert.Equal(t, 4821, *pc.Header.NumeroZ, line)
		assert.Empty(t, pc.Errores, line)
	}
}

func TestParse_NumeroConAcento(t *testing.T) {
	pc := cierre.Parse("RESUMEN\nNÚMERO: 77\n")
	require.NotNil(t, pc.Header.NumeroZ)
	assert.Equal(t, 77, *pc.Header.NumeroZ)
}

func TestParse_EncabezadoDesconocidoNoAfecta(t *testing.T) {
	base := "VENTAS POR PRODUCTO\nNAFTA SUPER          100.00\n"
	conRuido := "PROMOCIONES DEL MES\nNAFTA PREMIUM     999.00\n" + base

	assert.Equal(t, cierre.Parse(base), cierre.Parse(conRuido),
		"un encabezado desconocido sin sección activa no aporta nada")
}

func TestParse_Idempotente(t *testing.T) {
	text := loadFixture(t)
	assert.Equal(t, cierre.Parse(text), cierre.Parse(text))
}

func TestParse_PreservaOrden(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("CUPONES\n")
	for _, d := range []string{"VISA", "AMEX", "CABAL", "MASTER"} {
		sb.WriteString(d + "   10.00\n")
	}
	pc := cierre.Parse(sb.String())

	var got []string
	for _, c := range pc.Cupones {
		got = append(got, c.Descripcion)
	}
	assert.Equal(t, []string{"VISA", "AMEX", "CABAL", "MASTER"}, got)
}

func TestParse_PagosElectronicosConEspacioSimple(t *testing.T) {
	text := "PAGOS ELECTRONICOS\nQR MODO 500.00\nCUPONES\nVISA CREDITO 300.00\n"
	pc := cierre.Parse(text)

	require.Len(t, pc.PagosElectronicos, 1)
	assert.Equal(t, cierre.LineItem{Descripcion: "QR MODO", Monto: 500}, pc.PagosElectronicos[0])
	assert.Empty(t, pc.Cupones, "fuera de pagos electrónicos un espacio simple no separa columnas")
}

func TestParse_TotalesDesdePieDeSeccion(t *testing.T) {
	text := "CIERRE Z\nNumero: 9\nREMITOS\nR1   Cliente   10.00\nTOTAL REMITOS   10.00\n"
	pc := cierre.Parse(text)
	assert.InDelta(t, 10.0, pc.Header.TotalRemitos, 1e-9)

	text = "CIERRE Z\nTOTAL REMITOS 25.00\nREMITOS\nTOTAL REMITOS   10.00\n"
	pc = cierre.Parse(text)
	assert.InDelta(t, 25.0, pc.Header.TotalRemitos, 1e-9, "el resumen tiene prioridad")
}

func TestParse_MovimientoSinDescripcion(t *testing.T) {
	pc := cierre.Parse("EGRESOS\n3001 450.00\n")
	require.Len(t, pc.Egresos, 1)
	assert.Equal(t, "sin detalle", pc.Egresos[0].Descripcion)
}

func TestParse_TextoVacio(t *testing.T) {
	pc := cierre.Parse("")
	assert.Nil(t, pc.Header.NumeroZ)
	assert.NotNil(t, pc.Ventas)
	assert.NotNil(t, pc.Errores)
	assert.Zero(t, pc.ItemCount())
}

func TestParse_FinesDeLineaWindows(t *testing.T) {
	pc := cierre.Parse("CIERRE Z\r\nNumero: 15\r\nVENTAS POR PRODUCTO\r\nGNC   12.00\r\n")
	require.NotNil(t, pc.Header.NumeroZ)
	assert.Equal(t, 15, *pc.Header.NumeroZ)
	require.Len(t, pc.Ventas, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Secciones genéricas y separadores
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_SeccionesGenericasVanASuCampo(t *testing.T) {
	tests := []struct {
		header string
		field  func(*cierre.ParsedClosure) []cierre.LineItem
	}{
		{"VENTAS POR PRODUCTO", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.Ventas }},
		{"BAJAS", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.Bajas }},
		{"RETENCIONES IIBB", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.RetencionesIIBB }},
		{"CUPONES", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.Cupones }},
		{"CUPONES TARJETAS", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.Cupones }},
		{"PAGOS ELECTRONICOS", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.PagosElectronicos }},
		{"TIRADAS", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.Tiradas }},
		{"COMBUSTIBLES A CREDITO", func(p *cierre.ParsedClosure) []cierre.LineItem { return p.CombustibleCredito }},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			pc := cierre.Parse(tt.header + "\nRENGLON DE PRUEBA     123.45\n")

			assert.Equal(t, []cierre.LineItem{{Descripcion: "RENGLON DE PRUEBA", Monto: 123.45}}, tt.field(pc))
			assert.Equal(t, 1, pc.ItemCount(), "el renglón cae solo en el campo de su sección")
		})
	}
}

func TestParse_GuionesCierranLaSeccion(t *testing.T) {
	for _, rule := range []string{"-", "--", "----------"} {
		pc := cierre.Parse("VENTAS POR PRODUCTO\nGNC   10\n" + rule + "\nSUELTO   99\n")

		assert.Equal(t, []cierre.LineItem{{Descripcion: "GNC", Monto: 10}}, pc.Ventas, "separador %q", rule)
		assert.Empty(t, pc.Errores, "después del separador no hay sección activa")
	}
}
