package gateway

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed submission or download into the small set
// of outcomes the UI can explain to the user.
type ErrorKind int

const (
	// KindServerUnavailable means the connection was actively refused.
	KindServerUnavailable ErrorKind = iota + 1
	// KindAddressNotFound means the host could not be resolved.
	KindAddressNotFound
	// KindServerRejected means a response arrived with a non-success status.
	KindServerRejected
	// KindNoResponse means the request was sent but no response arrived.
	KindNoResponse
	// KindWrongContentType means the download response declared an
	// unexpected media type.
	KindWrongContentType
	// KindEmptyPayload means the download response carried zero bytes.
	KindEmptyPayload
	// KindUnexpected covers everything else, e.g. a request that failed
	// before it was sent.
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindServerUnavailable:
		return "server unavailable"
	case KindAddressNotFound:
		return "address not found"
	case KindServerRejected:
		return "server rejected"
	case KindNoResponse:
		return "no response"
	case KindWrongContentType:
		return "wrong content type"
	case KindEmptyPayload:
		return "empty payload"
	default:
		return "unexpected"
	}
}

// Error is the single error type returned by the gateway. Every kind
// carries enough detail to render one human-readable sentence.
type Error struct {
	Kind        ErrorKind
	Status      int    // KindServerRejected only
	Message     string // server-supplied message or failure detail
	ContentType string // KindWrongContentType only
	Err         error  // underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServerRejected:
		return fmt.Sprintf("%s: %d %s", e.Kind, e.Status, e.Message)
	case KindWrongContentType:
		return fmt.Sprintf("%s: got %q", e.Kind, e.ContentType)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		if e.Message != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Message)
		}
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage renders the localized sentence shown to the user. The wording
// matches the product's established copy.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindServerUnavailable:
		return "No se puede conectar al servidor. Verifica que el backend esté ejecutándose."
	case KindAddressNotFound:
		return "URL del servidor no encontrada. Verifica la configuración de la API."
	case KindServerRejected:
		return fmt.Sprintf("Error del servidor: %d - %s", e.Status, e.Message)
	case KindNoResponse:
		return "No se recibió respuesta del servidor. Verifica la conexión a internet."
	case KindWrongContentType:
		if e.Message != "" {
			return fmt.Sprintf("El servidor retornó un error: %s", e.Message)
		}
		return fmt.Sprintf("Tipo de archivo no válido. Se esperaba Excel pero se recibió: %s", e.ContentType)
	case KindEmptyPayload:
		return "El archivo recibido está vacío"
	default:
		if e.Message != "" {
			return fmt.Sprintf("Error inesperado: %s", e.Message)
		}
		return "Error inesperado al procesar la solicitud."
	}
}

// rejection builds a KindServerRejected error, defaulting the message to the
// status's standard reason phrase.
func rejection(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: KindServerRejected, Status: status, Message: message}
}
