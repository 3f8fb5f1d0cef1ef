package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "server unavailable",
			err:  &Error{Kind: KindServerUnavailable},
			want: "No se puede conectar al servidor. Verifica que el backend esté ejecutándose.",
		},
		{
			name: "address not found",
			err:  &Error{Kind: KindAddressNotFound},
			want: "URL del servidor no encontrada. Verifica la configuración de la API.",
		},
		{
			name: "server rejected carries status and message",
			err:  &Error{Kind: KindServerRejected, Status: 500, Message: "boom"},
			want: "Error del servidor: 500 - boom",
		},
		{
			name: "no response",
			err:  &Error{Kind: KindNoResponse},
			want: "No se recibió respuesta del servidor. Verifica la conexión a internet.",
		},
		{
			name: "wrong content type with declared type",
			err:  &Error{Kind: KindWrongContentType, ContentType: "text/html"},
			want: "Tipo de archivo no válido. Se esperaba Excel pero se recibió: text/html",
		},
		{
			name: "wrong content type with error page text",
			err:  &Error{Kind: KindWrongContentType, ContentType: "text/plain", Message: "db offline"},
			want: "El servidor retornó un error: db offline",
		},
		{
			name: "empty payload",
			err:  &Error{Kind: KindEmptyPayload},
			want: "El archivo recibido está vacío",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.UserMessage())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &Error{Kind: KindServerUnavailable, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "server unavailable")
}

func TestRejection_DefaultsToReasonPhrase(t *testing.T) {
	err := rejection(404, "")
	assert.Equal(t, "Not Found", err.Message)
	err = rejection(418, "short and stout")
	assert.Equal(t, "short and stout", err.Message)
}
