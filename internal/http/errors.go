package httpx

import (
	"net/http"

	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
)

// WriteServiceError maps a service-layer error onto the HTTP boundary.
// Worker-reported rejections keep the worker's original status code;
// local transport failures always come back 500-class with the
// transport_failure discriminator so pollers can treat them as transient.
func WriteServiceError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrCodeWorkerRejected:
		status = http.StatusBadRequest
		if s := apperrors.GetHTTPStatus(err); s >= 400 && s < 500 {
			status = s
		}
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeNoMatch:
		status = http.StatusNotFound
	case apperrors.ErrCodeTransport:
		status = http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled, apperrors.ErrCodeInternal:
		status = http.StatusInternalServerError
	}

	errCode := string(code)
	if errCode == "" {
		errCode = "internal"
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: errCode, Err: err})
}
