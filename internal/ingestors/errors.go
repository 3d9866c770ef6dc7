package ingestors

import (
	"fmt"

	"serverlog-analyser/internal/shared/svcerrors"
)

// UploadIngestionService errors
const (
	codeValidationFailed = "UPL_1000"
	codeUploadTooLarge   = "UPL_1001"

	codeInternalUploadStoreFailed = "UPL_9000"
	codeInternalJobSubmitFailed   = "UPL_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errUploadTooLarge(maxBytes int64, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUploadTooLarge, fmt.Sprintf("upload too large: must be <= %d bytes", maxBytes), cause)
}

// errInternalUploadStoreFailed returns an error when the upload could not be stored.
func errInternalUploadStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUploadStoreFailed, fmt.Errorf("uploadStoreFailed: %w", cause))
}

// errInternalJobSubmitFailed returns an error when the stored upload could not be turned into a job.
func errInternalJobSubmitFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalJobSubmitFailed, fmt.Errorf("jobSubmitFailed: %w", cause))
}
