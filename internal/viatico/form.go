package viatico

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Scalar field names accepted by Form.SetField. These match the wire names
// so a captured form document can be replayed field by field.
const (
	FieldTipoViatico          = "tipoViatico"
	FieldLineaNegocio         = "lineaNegocio"
	FieldZonaUbicacion        = "zonaUbicacion"
	FieldSolicitante          = "solicitante"
	FieldCentroCostos         = "centroCostos"
	FieldNoAnticipo           = "noAnticipo"
	FieldCedulaCiudadania     = "cedulaCiudadania"
	FieldFechaInicio          = "fechaInicio"
	FieldFechaFinal           = "fechaFinal"
	FieldFechaSolicitud       = "fechaSolicitud"
	FieldCiudadOrigen         = "ciudadOrigen"
	FieldCiudadDestino        = "ciudadDestino"
	FieldActividadRealizar    = "actividadRealizar"
	FieldFuncionarioConsignar = "funcionarioConsignar"
	FieldEntidadBancaria      = "entidadBancaria"
	FieldTipoCuenta           = "tipoCuenta"
	FieldNoCuenta             = "noCuenta"
	FieldDineroEntregado      = "dineroEntregado"
	FieldCorreoFuncionario    = "correoFuncionario"
	FieldObservaciones        = "observaciones"
)

// Line-item field names accepted by Form.SetLineItemField.
const (
	LineFieldItem          = "item"
	LineFieldFechaFactura  = "fechaFactura"
	LineFieldNIT           = "nit"
	LineFieldNombreEmisor  = "nombreEmisor"
	LineFieldConcepto      = "concepto"
	LineFieldNoFactura     = "noFactura"
	LineFieldObservaciones = "observaciones"
	LineFieldValor         = "valor"
	LineFieldSoporte       = "soporte"
)

// Form owns one in-progress reimbursement request. It is the single place
// form input flows through: digit-only fields are sanitized on entry and the
// balance (saldo) is recomputed inside every mutation that can affect it, so
// the held request is never stale.
//
// A Form is not safe for concurrent use; each view owns exactly one.
type Form struct {
	req    Request
	logger *zap.Logger
}

// NewForm creates an empty form with no line items.
func NewForm(logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{logger: logger}
}

// Request returns the currently-held request. The balance is always
// consistent with the data at the time of the call.
func (f *Form) Request() *Request {
	return &f.req
}

// SetField updates one scalar attribute by its wire name. The national-ID
// and account-number fields have non-digit characters stripped before
// storage; unparseable monetary input is stored as zero. An unknown field
// name is a programming error and panics.
func (f *Form) SetField(name, value string) {
	switch name {
	case FieldTipoViatico:
		f.req.TipoViatico = value
	case FieldLineaNegocio:
		f.req.LineaNegocio = value
	case FieldZonaUbicacion:
		f.req.ZonaUbicacion = value
	case FieldSolicitante:
		f.req.Solicitante = value
	case FieldCentroCostos:
		f.req.CentroCostos = value
	case FieldNoAnticipo:
		f.req.NoAnticipo = value
	case FieldCedulaCiudadania:
		f.req.CedulaCiudadania = digitsOnly(value)
	case FieldFechaInicio:
		f.req.FechaInicio = value
	case FieldFechaFinal:
		f.req.FechaFinal = value
	case FieldFechaSolicitud:
		f.req.FechaSolicitud = value
	case FieldCiudadOrigen:
		f.req.CiudadOrigen = value
	case FieldCiudadDestino:
		f.req.CiudadDestino = value
	case FieldActividadRealizar:
		f.req.ActividadRealizar = value
	case FieldFuncionarioConsignar:
		f.req.FuncionarioConsignar = value
	case FieldEntidadBancaria:
		f.req.EntidadBancaria = value
	case FieldTipoCuenta:
		f.req.TipoCuenta = AccountType(value)
	case FieldNoCuenta:
		f.req.NoCuenta = digitsOnly(value)
	case FieldDineroEntregado:
		f.req.DineroEntregado = parseMoney(value)
		f.recomputeBalance()
	case FieldCorreoFuncionario:
		f.req.CorreoFuncionario = value
	case FieldObservaciones:
		f.req.Observaciones = value
	default:
		panic(fmt.Sprintf("viatico: unknown form field %q", name))
	}
}

// SetLineItemField updates one attribute of the line item at index. An
// out-of-range index is a programming error and panics.
func (f *Form) SetLineItemField(index int, field, value string) {
	f.checkIndex(index)
	item := &f.req.Conceptos[index]
	switch field {
	case LineFieldItem:
		item.Item = value
	case LineFieldFechaFactura:
		item.FechaFactura = value
	case LineFieldNIT:
		item.NIT = value
	case LineFieldNombreEmisor:
		item.NombreEmisor = value
	case LineFieldConcepto:
		item.Concepto = value
	case LineFieldNoFactura:
		item.NoFactura = value
	case LineFieldObservaciones:
		item.Observaciones = value
	case LineFieldValor:
		item.Valor = parseMoney(value)
		f.recomputeBalance()
	case LineFieldSoporte:
		if value == "" {
			item.Soporte = nil
		} else {
			item.Soporte = &Attachment{Name: value}
		}
	default:
		panic(fmt.Sprintf("viatico: unknown line-item field %q", field))
	}
}

// AddLineItem appends an empty line item and returns its index. Display
// numbering is index+1.
func (f *Form) AddLineItem() int {
	f.req.Conceptos = append(f.req.Conceptos, LineItem{})
	f.recomputeBalance()
	index := len(f.req.Conceptos) - 1
	f.logger.Debug("line item added", zap.Int("index", index))
	return index
}

// RemoveLineItem removes the line item at index, shifting later items down
// one position. Removal is immediate and unconditional. An out-of-range
// index panics.
func (f *Form) RemoveLineItem(index int) {
	f.checkIndex(index)
	f.req.Conceptos = append(f.req.Conceptos[:index], f.req.Conceptos[index+1:]...)
	f.recomputeBalance()
	f.logger.Debug("line item removed", zap.Int("index", index))
}

func (f *Form) checkIndex(index int) {
	if index < 0 || index >= len(f.req.Conceptos) {
		panic(fmt.Sprintf("viatico: line item index %d out of range [0,%d)", index, len(f.req.Conceptos)))
	}
}

// recomputeBalance keeps saldo = dineroEntregado - sum(valor). Called from
// every mutator that can change either side.
func (f *Form) recomputeBalance() {
	f.req.Saldo = f.req.DineroEntregado.Sub(f.req.TotalExpenses())
}

// digitsOnly discards every non-digit rune from s.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// parseMoney maps free-form numeric input to a decimal, treating empty or
// unparseable input as zero.
func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
