package panel

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/gfranco7/viaticos-platform/internal/gateway"
)

// XLSXContentType is the media type the report endpoint must declare.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// errorBodyLimit caps how much of a textual error page is surfaced to the
// user, matching the established behavior.
const errorBodyLimit = 200

// DocumentFetcher fetches the raw report document.
type DocumentFetcher interface {
	DownloadDocument(ctx context.Context, period string) (*gateway.Document, error)
}

// Saver hands downloaded bytes to the host's save primitive and returns the
// final location.
type Saver interface {
	SaveReport(fileName string, content []byte) (string, error)
}

// Flow drives the password-gated report download:
// Idle -> AwaitingPassword -> Authorized -> Downloading -> Succeeded, with
// cancellation and failure resetting to Idle. One Flow serves one panel
// view; only a single download can be in flight.
type Flow struct {
	state   State
	fetcher DocumentFetcher
	saver   Saver
	logger  *zap.Logger
}

// NewFlow creates an idle download flow.
func NewFlow(fetcher DocumentFetcher, saver Saver, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		state:   StateIdle,
		fetcher: fetcher,
		saver:   saver,
		logger:  logger,
	}
}

// DownloadReport fetches the aggregate report, validates it is a non-empty
// spreadsheet, and triggers exactly one save tagged with the period label.
// It requires the flow to be Authorized; any failure resets to Idle and the
// returned error renders one user-facing sentence via DescribeError.
func (f *Flow) DownloadReport(ctx context.Context, period string) error {
	if err := f.transition(StateDownloading); err != nil {
		return err
	}

	doc, err := f.fetcher.DownloadDocument(ctx, period)
	if err != nil {
		return f.fail(err)
	}

	if err := validateDocument(doc); err != nil {
		return f.fail(err)
	}

	fileName := fmt.Sprintf("reporte_solicitudes_%s.xlsx", period)
	path, err := f.saver.SaveReport(fileName, doc.Body)
	if err != nil {
		return f.fail(&gateway.Error{Kind: gateway.KindUnexpected, Message: "saving report", Err: err})
	}

	f.logger.Info("report downloaded",
		zap.String("period", period),
		zap.String("path", path),
		zap.Int("size", len(doc.Body)))
	return f.transition(StateSucceeded)
}

// validateDocument enforces the declared spreadsheet media type and a
// non-empty payload, in that order. A textual response is read as an error
// page and its text becomes the failure detail.
func validateDocument(doc *gateway.Document) error {
	mediaType, _, err := mime.ParseMediaType(doc.ContentType)
	if err != nil {
		mediaType = doc.ContentType
	}
	if mediaType != XLSXContentType {
		gerr := &gateway.Error{Kind: gateway.KindWrongContentType, ContentType: doc.ContentType}
		if strings.HasPrefix(mediaType, "text/") {
			text := string(doc.Body)
			if len(text) > errorBodyLimit {
				text = text[:errorBodyLimit]
			}
			gerr.Message = text
		}
		return gerr
	}
	if len(doc.Body) == 0 {
		return &gateway.Error{Kind: gateway.KindEmptyPayload}
	}
	return nil
}

// DescribeError renders the single user-facing sentence for a download
// failure, with dedicated wording for not-found and internal-error statuses.
func DescribeError(err error) string {
	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		return "Error al descargar el reporte. Por favor, inténtelo de nuevo."
	}
	if gerr.Kind == gateway.KindServerRejected {
		switch gerr.Status {
		case http.StatusNotFound:
			return "Endpoint no encontrado. Verifica la ruta del backend."
		case http.StatusInternalServerError:
			return "Error interno del servidor al generar el archivo."
		}
	}
	return gerr.UserMessage()
}
