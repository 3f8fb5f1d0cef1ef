package viatico

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// The upstream API expects monetary values as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountType identifies the bank account type for disbursement.
type AccountType string

const (
	AccountSavings  AccountType = "ahorros"
	AccountChecking AccountType = "corriente"
)

// Attachment is a reference to a supporting document (soporte). Only the
// name travels with the request; binary content is never transmitted.
type Attachment struct {
	Name string
}

// MarshalJSON flattens the attachment to its file name on the wire.
func (a Attachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Name)
}

// UnmarshalJSON accepts the flattened file-name form.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("attachment reference must be a string: %w", err)
	}
	a.Name = name
	return nil
}

// LineItem is one itemized expense (concepto) within a request.
type LineItem struct {
	Item          string          `json:"item" validate:"required"`
	FechaFactura  string          `json:"fechaFactura" validate:"required"`
	NIT           string          `json:"nit" validate:"required"`
	NombreEmisor  string          `json:"nombreEmisor" validate:"required"`
	Concepto      string          `json:"concepto" validate:"required"`
	NoFactura     string          `json:"noFactura" validate:"required"`
	Observaciones string          `json:"observaciones"`
	Valor         decimal.Decimal `json:"valor"`
	Soporte       *Attachment     `json:"soporte,omitempty"`
}

// Request is a full travel-expense reimbursement request (viático). JSON
// field names follow the upstream wire contract.
type Request struct {
	TipoViatico          string          `json:"tipoViatico" validate:"required"`
	LineaNegocio         string          `json:"lineaNegocio" validate:"required"`
	ZonaUbicacion        string          `json:"zonaUbicacion" validate:"required"`
	Solicitante          string          `json:"solicitante" validate:"required"`
	CentroCostos         string          `json:"centroCostos" validate:"required"`
	NoAnticipo           string          `json:"noAnticipo" validate:"required"`
	CedulaCiudadania     string          `json:"cedulaCiudadania" validate:"required,number"`
	FechaInicio          string          `json:"fechaInicio" validate:"required"`
	FechaFinal           string          `json:"fechaFinal" validate:"required"`
	FechaSolicitud       string          `json:"fechaSolicitud" validate:"required"`
	CiudadOrigen         string          `json:"ciudadOrigen" validate:"required"`
	CiudadDestino        string          `json:"ciudadDestino" validate:"required"`
	ActividadRealizar    string          `json:"actividadRealizar" validate:"required"`
	FuncionarioConsignar string          `json:"funcionarioConsignar" validate:"required"`
	EntidadBancaria      string          `json:"entidadBancaria" validate:"required"`
	TipoCuenta           AccountType     `json:"tipoCuenta" validate:"required,oneof=ahorros corriente"`
	NoCuenta             string          `json:"noCuenta" validate:"required,number"`
	DineroEntregado      decimal.Decimal `json:"dineroEntregado"`
	Saldo                decimal.Decimal `json:"saldo"`
	CorreoFuncionario    string          `json:"correoFuncionario" validate:"required,email"`
	Observaciones        string          `json:"observaciones"`
	Conceptos            []LineItem      `json:"conceptos" validate:"dive"`
}

// TotalExpenses returns the sum of all line-item values, treating each
// stored value at face value (unparseable input is already stored as zero).
func (r *Request) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, c := range r.Conceptos {
		total = total.Add(c.Valor)
	}
	return total
}
