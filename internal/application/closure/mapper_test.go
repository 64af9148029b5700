package closure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

func TestToEntityToParsed_ConservaSecciones(t *testing.T) {
	numero := 12
	pc := &cierre.ParsedClosure{
		Header: cierre.Header{NumeroZ: &numero, FechaTurno: "17/10/2026", TotalVentas: 100.456},
		Ventas: []cierre.LineItem{{Descripcion: "NAFTA", Monto: 60}, {Descripcion: "GNC", Monto: 40}},
		Remitos: []cierre.DeliveryNote{{Codigo: "R1", Cliente: "Agro SA", Monto: 10}},
		Egresos: []cierre.CashMovement{{Comprobante: "2045", Descripcion: "insumos", Monto: 5.5}},
		Tanques: []cierre.TankReading{{Tanque: "2", Producto: "DIESEL", Volumen: 4100.5}},
		DeclaracionEmpleado: []cierre.Declaration{{Campo: "efectivo_declarado", Monto: 98200}},
		Errores: []cierre.ParseIssue{{Linea: 3}},
	}

	c, items := toEntity("st", "us", "upload", pc)
	require.Len(t, items, 6)
	assert.Equal(t, 12, c.NumeroZ)
	assert.Equal(t, 1, c.IssueCount)
	assert.Equal(t, "100.46", c.TotalVentas.StringFixed(2), "montos redondeados a centavos")
	for _, it := range items {
		assert.Equal(t, c.ID, it.ClosureID)
	}
	assert.Equal(t, "VENTAS", items[0].Section)
	assert.Equal(t, 1, items[1].Position)

	back := toParsed(c, items)
	assert.Equal(t, pc.Ventas, back.Ventas)
	assert.Equal(t, pc.Remitos, back.Remitos)
	assert.Equal(t, pc.Egresos, back.Egresos)
	assert.Equal(t, pc.Tanques, back.Tanques)
	assert.Equal(t, pc.DeclaracionEmpleado, back.DeclaracionEmpleado)
	assert.NotNil(t, back.Cupones)
	assert.Empty(t, back.Errores)
	require.NotNil(t, back.Header.NumeroZ)
	assert.Equal(t, 12, *back.Header.NumeroZ)
}
