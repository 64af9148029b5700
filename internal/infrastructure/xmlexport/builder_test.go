package xmlexport

import (
	"os"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appclosure "github.com/jhoicas/cierres-api/internal/application/closure"
	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

func fixtureDoc(t *testing.T) *appclosure.Document {
	t.Helper()
	b, err := os.ReadFile("../../domain/cierre/testdata/cierre_z.txt")
	require.NoError(t, err)
	return &appclosure.Document{StationCode: "EST-001", StationName: "Estación Ruta 5", Cierre: cierre.Parse(string(b))}
}

func TestRenderClosureXML(t *testing.T) {
	doc := fixtureDoc(t)
	doc.ClosureID = "abc"
	doc.Huella = "f00"

	out, err := NewBuilder().RenderClosureXML(doc)
	require.NoError(t, err)

	x := etree.NewDocument()
	require.NoError(t, x.ReadFromBytes(out))
	root := x.Root()
	require.NotNil(t, root)
	assert.Equal(t, "CierreZ", root.Tag)
	assert.Equal(t, "4821", root.SelectAttrValue("numero", ""))
	assert.Equal(t, "f00", root.SelectAttrValue("huella", ""))
	assert.Equal(t, "1245300.50", root.FindElement("Totales/Ventas").Text())
	assert.Equal(t, "-35.15", root.FindElement("Totales/Faltante").Text())
	assert.Equal(t, "Gómez, Laura", root.FindElement("Cabecera/CerradoPor").Text())

	ventas := root.FindElements("Secciones/Seccion[@nombre='VENTAS']/Item")
	require.Len(t, ventas, 3)
	assert.Equal(t, "NAFTA SUPER", ventas[0].SelectAttrValue("descripcion", ""))
	assert.Len(t, root.FindElements("Secciones/Seccion[@nombre='TANQUES']/Tanque"), 2)
	assert.Len(t, root.FindElements("Secciones/Seccion[@nombre='BAJAS']/Item"), 1)

	doc.Cierre = cierre.Parse("CIERRE Z\nNumero: 1\nVENTAS POR PRODUCTO\nGNC   10\n")
	out, err = NewBuilder().RenderClosureXML(doc)
	require.NoError(t, err)
	x = etree.NewDocument()
	require.NoError(t, x.ReadFromBytes(out))
	assert.Len(t, x.Root().FindElements("Secciones/Seccion"), 1)
	assert.Empty(t, x.Root().FindElements("Secciones/Seccion[@nombre='BAJAS']"), "las secciones vacías no se emiten")
}

func TestFingerprint_Estable(t *testing.T) {
	b := NewBuilder()
	doc := fixtureDoc(t)

	h1, err := b.Fingerprint(doc)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	doc.ClosureID = "otro-id"
	doc.Huella = h1
	doc.CreatedAt = time.Now()
	h2, err := b.Fingerprint(doc)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "los datos de la carga no alteran la huella")

	doc.Cierre.Ventas[0].Monto += 0.01
	h3, err := b.Fingerprint(doc)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	other := fixtureDoc(t)
	other.StationCode = "EST-002"
	h4, err := b.Fingerprint(other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4, "la estación forma parte de la huella")
}

func TestRenderClosureXML_SinCierre(t *testing.T) {
	_, err := NewBuilder().RenderClosureXML(&appclosure.Document{})
	assert.Error(t, err)
}
