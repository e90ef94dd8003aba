package httputils

import (
	"net/http"

	"boscoin.io/ballot/lib/errors"
)

var ErrorsToStatus = map[*errors.Error]int{
	errors.ErrorBallotNotFound:         http.StatusNotFound,
	errors.ErrorVoterNotFound:          http.StatusNotFound,
	errors.ErrorAccountNotFound:        http.StatusNotFound,
	errors.ErrorTransactionNotFound:    http.StatusNotFound,
	errors.ErrorContractNotFound:       http.StatusNotFound,
	errors.ErrorContractMethodNotFound: http.StatusNotFound,

	errors.ErrorTransactionAlreadyExists: http.StatusConflict,
	errors.ErrorTransactionSameSource:    http.StatusConflict,
	errors.ErrorContractAlreadyExists:    http.StatusConflict,

	errors.ErrorLedgerClosed:    http.StatusServiceUnavailable,
	errors.ErrorLedgerQueueFull: http.StatusServiceUnavailable,

	errors.ErrorTooManyRequests: http.StatusTooManyRequests,
	errors.ErrorHTTPServerError: http.StatusInternalServerError,

	errors.ErrorStorageCoreError:   http.StatusInternalServerError,
	errors.ErrorStorageConfigError: http.StatusInternalServerError,
}

// StatusCode returns the http status for the error; the rest of the known
// errors are the client errors.
func StatusCode(err error) int {
	e, ok := errors.Cause(err)
	if !ok {
		return http.StatusInternalServerError
	}

	for target, status := range ErrorsToStatus {
		if target.Code == e.Code {
			return status
		}
	}

	return http.StatusBadRequest
}
