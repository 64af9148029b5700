package jsonschema

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cierres-api/internal/domain/cierre"
)

func TestValidateClosure(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"mínimo", `{"header":{"numero_z":1}}`, true},
		{"sin número también pasa el schema", `{"header":{}}`, true},
		{"sin header", `{"ventas":[]}`, false},
		{"numero no entero", `{"header":{"numero_z":"12"}}`, false},
		{"monto como texto", `{"header":{},"ventas":[{"descripcion":"GNC","monto":"10"}]}`, false},
		{"remito sin cliente", `{"header":{},"remitos":[{"codigo":"R1","monto":1}]}`, false},
		{"campo declarado no normalizado", `{"header":{},"declaracion_empleado":[{"campo":"Efectivo Declarado","monto":1}]}`, false},
		{"json roto", `{"header":`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateClosure([]byte(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateClosure_AceptaSalidaDelParser(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	b, err := os.ReadFile("../../domain/cierre/testdata/cierre_z.txt")
	require.NoError(t, err)
	raw, err := json.Marshal(cierre.Parse(string(b)))
	require.NoError(t, err)

	assert.NoError(t, v.ValidateClosure(raw), "lo que devuelve el preview se puede reimportar")
}
