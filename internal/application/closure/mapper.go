package closure

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
)

func money(f float64) decimal.Decimal  { return decimal.NewFromFloat(f).Round(2) }
func volume(f float64) decimal.Decimal { return decimal.NewFromFloat(f).Round(3) }

// toEntity arma la cabecera y los renglones a persistir. Los montos se redondean a
// centavos y los volúmenes a litros con tres decimales, igual que las columnas NUMERIC.
func toEntity(stationID, userID, source string, pc *cierre.ParsedClosure) (*entity.Closure, []*entity.ClosureItem) {
	h := pc.Header
	c := &entity.Closure{
		ID:                      uuid.New().String(),
		StationID:               stationID,
		FechaTurno:              h.FechaTurno,
		HoraInicio:              h.HoraInicio,
		HoraFin:                 h.HoraFin,
		CerradoPor:              h.CerradoPor,
		TotalVentas:             money(h.TotalVentas),
		TotalRemitos:            money(h.TotalRemitos),
		TotalGastos:             money(h.TotalGastos),
		TotalARendir:            money(h.TotalARendir),
		TotalFaltante:           money(h.TotalFaltante),
		TotalPagosElectronicos:  money(h.TotalPagosElectronicos),
		TotalCombustibleCredito: money(h.TotalCombustibleCredito),
		TotalCupones:            money(h.TotalCupones),
		TotalTiradas:            money(h.TotalTiradas),
		Source:                  source,
		IssueCount:              len(pc.Errores),
		UploadedBy:              userID,
	}
	if h.NumeroZ != nil {
		c.NumeroZ = *h.NumeroZ
	}

	var items []*entity.ClosureItem
	add := func(s cierre.Section, pos int, codigo, desc string, monto, vol decimal.Decimal) {
		items = append(items, &entity.ClosureItem{
			ID:          uuid.New().String(),
			ClosureID:   c.ID,
			Section:     s.String(),
			Position:    pos,
			Codigo:      codigo,
			Descripcion: desc,
			Monto:       monto,
			Volumen:     vol,
		})
	}
	lines := func(s cierre.Section, list []cierre.LineItem) {
		for i, it := range list {
			add(s, i, "", it.Descripcion, money(it.Monto), decimal.Zero)
		}
	}
	cash := func(s cierre.Section, list []cierre.CashMovement) {
		for i, it := range list {
			add(s, i, it.Comprobante, it.Descripcion, money(it.Monto), decimal.Zero)
		}
	}

	lines(cierre.SectionSales, pc.Ventas)
	for i, r := range pc.Remitos {
		add(cierre.SectionDeliveries, i, r.Codigo, r.Cliente, money(r.Monto), decimal.Zero)
	}
	lines(cierre.SectionWriteOffs, pc.Bajas)
	lines(cierre.SectionTaxWithholding, pc.RetencionesIIBB)
	lines(cierre.SectionCoupons, pc.Cupones)
	lines(cierre.SectionEPayment, pc.PagosElectronicos)
	lines(cierre.SectionDrawings, pc.Tiradas)
	cash(cierre.SectionInflows, pc.Ingresos)
	lines(cierre.SectionCreditFuel, pc.CombustibleCredito)
	cash(cierre.SectionOutflows, pc.Egresos)
	for i, t := range pc.Tanques {
		add(cierre.SectionTanks, i, t.Tanque, t.Producto, decimal.Zero, volume(t.Volumen))
	}
	for i, d := range pc.DeclaracionEmpleado {
		add(cierre.SectionEmployeeDeclaration, i, "", d.Campo, money(d.Monto), decimal.Zero)
	}
	return c, items
}

// toParsed reconstruye el cierre a partir de lo persistido. Resumen y Errores no se
// guardan, así que vuelven vacíos. Los renglones deben venir ordenados por posición.
func toParsed(c *entity.Closure, items []*entity.ClosureItem) *cierre.ParsedClosure {
	numero := c.NumeroZ
	pc := &cierre.ParsedClosure{
		Header: cierre.Header{
			NumeroZ:                 &numero,
			FechaTurno:              c.FechaTurno,
			HoraInicio:              c.HoraInicio,
			HoraFin:                 c.HoraFin,
			CerradoPor:              c.CerradoPor,
			TotalVentas:             c.TotalVentas.InexactFloat64(),
			TotalRemitos:            c.TotalRemitos.InexactFloat64(),
			TotalGastos:             c.TotalGastos.InexactFloat64(),
			TotalARendir:            c.TotalARendir.InexactFloat64(),
			TotalFaltante:           c.TotalFaltante.InexactFloat64(),
			TotalPagosElectronicos:  c.TotalPagosElectronicos.InexactFloat64(),
			TotalCombustibleCredito: c.TotalCombustibleCredito.InexactFloat64(),
			TotalCupones:            c.TotalCupones.InexactFloat64(),
			TotalTiradas:            c.TotalTiradas.InexactFloat64(),
		},
		Ventas:              []cierre.LineItem{},
		Remitos:             []cierre.DeliveryNote{},
		Bajas:               []cierre.LineItem{},
		RetencionesIIBB:     []cierre.LineItem{},
		Cupones:             []cierre.LineItem{},
		PagosElectronicos:   []cierre.LineItem{},
		Tiradas:             []cierre.LineItem{},
		Ingresos:            []cierre.CashMovement{},
		Egresos:             []cierre.CashMovement{},
		CombustibleCredito:  []cierre.LineItem{},
		Tanques:             []cierre.TankReading{},
		DeclaracionEmpleado: []cierre.Declaration{},
		Resumen:             []string{},
		Errores:             []cierre.ParseIssue{},
	}

	for _, it := range items {
		s, ok := cierre.ParseSection(it.Section)
		if !ok {
			continue
		}
		monto := it.Monto.InexactFloat64()
		line := cierre.LineItem{Descripcion: it.Descripcion, Monto: monto}
		mov := cierre.CashMovement{Comprobante: it.Codigo, Descripcion: it.Descripcion, Monto: monto}
		switch s {
		case cierre.SectionSales:
			pc.Ventas = append(pc.Ventas, line)
		case cierre.SectionDeliveries:
			pc.Remitos = append(pc.Remitos, cierre.DeliveryNote{Codigo: it.Codigo, Cliente: it.Descripcion, Monto: monto})
		case cierre.SectionWriteOffs:
			pc.Bajas = append(pc.Bajas, line)
		case cierre.SectionTaxWithholding:
			pc.RetencionesIIBB = append(pc.RetencionesIIBB, line)
		case cierre.SectionCoupons:
			pc.Cupones = append(pc.Cupones, line)
		case cierre.SectionEPayment:
			pc.PagosElectronicos = append(pc.PagosElectronicos, line)
		case cierre.SectionDrawings:
			pc.Tiradas = append(pc.Tiradas, line)
		case cierre.SectionInflows:
			pc.Ingresos = append(pc.Ingresos, mov)
		case cierre.SectionCreditFuel:
			pc.CombustibleCredito = append(pc.CombustibleCredito, line)
		case cierre.SectionOutflows:
			pc.Egresos = append(pc.Egresos, mov)
		case cierre.SectionTanks:
			pc.Tanques = append(pc.Tanques, cierre.TankReading{Tanque: it.Codigo, Producto: it.Descripcion, Volumen: it.Volumen.InexactFloat64()})
		case cierre.SectionEmployeeDeclaration:
			pc.DeclaracionEmpleado = append(pc.DeclaracionEmpleado, cierre.Declaration{Campo: it.Descripcion, Monto: monto})
		}
	}
	return pc
}

func newDocument(st *entity.Station, c *entity.Closure, items []*entity.ClosureItem) *Document {
	doc := &Document{
		ClosureID: c.ID,
		Huella:    c.Huella,
		Source:    c.Source,
		CreatedAt: c.CreatedAt,
		Cierre:    toParsed(c, items),
	}
	if st != nil {
		doc.StationCode = st.Code
		doc.StationName = st.Name
	}
	return doc
}

func toClosureResponse(c *entity.Closure, itemCount int) *dto.ClosureResponse {
	if c == nil {
		return nil
	}
	return &dto.ClosureResponse{
		ID:         c.ID,
		StationID:  c.StationID,
		NumeroZ:    c.NumeroZ,
		FechaTurno: c.FechaTurno,
		HoraInicio: c.HoraInicio,
		HoraFin:    c.HoraFin,
		CerradoPor: c.CerradoPor,
		Totales: dto.ClosureTotals{
			Ventas:             c.TotalVentas,
			Remitos:            c.TotalRemitos,
			Gastos:             c.TotalGastos,
			ARendir:            c.TotalARendir,
			Faltante:           c.TotalFaltante,
			PagosElectronicos:  c.TotalPagosElectronicos,
			CombustibleCredito: c.TotalCombustibleCredito,
			Cupones:            c.TotalCupones,
			Tiradas:            c.TotalTiradas,
		},
		Huella:     c.Huella,
		Source:     c.Source,
		ItemCount:  itemCount,
		IssueCount: c.IssueCount,
		CreatedAt:  c.CreatedAt,
	}
}

func toItemResponses(items []*entity.ClosureItem) []dto.ClosureItemResponse {
	out := make([]dto.ClosureItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ClosureItemResponse{
			Section:     it.Section,
			Position:    it.Position,
			Codigo:      it.Codigo,
			Descripcion: it.Descripcion,
			Monto:       it.Monto,
			Volumen:     it.Volumen,
		})
	}
	return out
}
