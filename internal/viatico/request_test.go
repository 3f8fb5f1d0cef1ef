package viatico

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCompleteForm() *Form {
	form := NewForm(nil)
	fields := map[string]string{
		FieldTipoViatico:          "Nacional",
		FieldLineaNegocio:         "Consultoría",
		FieldZonaUbicacion:        "Centro",
		FieldSolicitante:          "Ana Ríos",
		FieldCentroCostos:         "CC-104",
		FieldNoAnticipo:           "A-2291",
		FieldCedulaCiudadania:     "1020304050",
		FieldFechaInicio:          "2026-08-01",
		FieldFechaFinal:           "2026-08-05",
		FieldFechaSolicitud:       "2026-07-28",
		FieldCiudadOrigen:         "Bogotá",
		FieldCiudadDestino:        "Medellín",
		FieldActividadRealizar:    "Visita a cliente",
		FieldFuncionarioConsignar: "Ana Ríos",
		FieldEntidadBancaria:      "Bancolombia",
		FieldTipoCuenta:           "ahorros",
		FieldNoCuenta:             "123456789",
		FieldDineroEntregado:      "800",
		FieldCorreoFuncionario:    "ana.rios@example.com",
	}
	for name, value := range fields {
		form.SetField(name, value)
	}
	i := form.AddLineItem()
	form.SetLineItemField(i, LineFieldItem, "1")
	form.SetLineItemField(i, LineFieldFechaFactura, "2026-08-02")
	form.SetLineItemField(i, LineFieldNIT, "900123456")
	form.SetLineItemField(i, LineFieldNombreEmisor, "Hotel Plaza")
	form.SetLineItemField(i, LineFieldConcepto, "Alojamiento")
	form.SetLineItemField(i, LineFieldNoFactura, "F-5501")
	form.SetLineItemField(i, LineFieldValor, "320.50")
	form.SetLineItemField(i, LineFieldSoporte, "factura-5501.jpg")
	return form
}

func TestRequest_WireShape(t *testing.T) {
	form := buildCompleteForm()
	data, err := json.Marshal(form.Request())
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))

	assert.Equal(t, "Ana Ríos", wire["solicitante"])
	assert.Equal(t, "ahorros", wire["tipoCuenta"])

	// Monetary fields travel as JSON numbers.
	assert.Equal(t, float64(800), wire["dineroEntregado"])
	assert.Equal(t, 479.5, wire["saldo"])

	conceptos, ok := wire["conceptos"].([]interface{})
	require.True(t, ok)
	require.Len(t, conceptos, 1)
	first := conceptos[0].(map[string]interface{})
	assert.Equal(t, 320.5, first["valor"])

	// The attachment reference flattens to its file name.
	assert.Equal(t, "factura-5501.jpg", first["soporte"])
}

func TestRequest_WireShapeOmitsMissingSoporte(t *testing.T) {
	form := NewForm(nil)
	i := form.AddLineItem()
	form.SetLineItemField(i, LineFieldConcepto, "Taxi")

	data, err := json.Marshal(form.Request())
	require.NoError(t, err)

	var wire struct {
		Conceptos []map[string]interface{} `json:"conceptos"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))
	require.Len(t, wire.Conceptos, 1)
	_, present := wire.Conceptos[0]["soporte"]
	assert.False(t, present)
}

func TestRequest_Validate(t *testing.T) {
	t.Run("complete request passes", func(t *testing.T) {
		form := buildCompleteForm()
		assert.NoError(t, form.Request().Validate())
	})

	t.Run("missing requester fails", func(t *testing.T) {
		form := buildCompleteForm()
		form.SetField(FieldSolicitante, "")
		err := form.Request().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Solicitante")
	})

	t.Run("malformed email fails", func(t *testing.T) {
		form := buildCompleteForm()
		form.SetField(FieldCorreoFuncionario, "not-an-email")
		assert.Error(t, form.Request().Validate())
	})

	t.Run("unknown account type fails", func(t *testing.T) {
		form := buildCompleteForm()
		form.SetField(FieldTipoCuenta, "bolsillo")
		assert.Error(t, form.Request().Validate())
	})
}
