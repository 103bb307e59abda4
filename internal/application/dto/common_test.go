package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/dto"
)

func TestFlag_AcceptsFormValues(t *testing.T) {
	cases := map[string]bool{
		`true`: true, `false`: false, `1`: true, `0`: false,
		`"1"`: true, `"0"`: false, `"true"`: true, `""`: false, `null`: false, `"si"`: true,
	}
	for raw, want := range cases {
		var f dto.Flag
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, bool(f), raw)
	}
}

func TestFlag_RejectsGarbage(t *testing.T) {
	var f dto.Flag
	assert.Error(t, json.Unmarshal([]byte(`"quizás"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &f))
}

func TestCreateSaleRequest_DecodesFrontendPayload(t *testing.T) {
	body := `{"action":"add_venta","producto_id":"p1","cantidad":2,"precio_unitario_con_iva":1190,"monto_total_con_iva":"2380.00","metodo_pago":"Efectivo","n_documento":"B-1"}`

	var req dto.CreateSaleRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.Cantidad)
	assert.Equal(t, 2, *req.Cantidad)
	require.NotNil(t, req.MontoTotalConIVA)
	assert.Equal(t, "2380", req.MontoTotalConIVA.String())
	assert.Equal(t, "B-1", req.NDocumento)
}
