package http

import "serverlog-analyser/internal/shared/svcerrors"

const (
	codeInvalidUpload   = "HTTP_1000"
	codeTooManyRequests = "HTTP_4290"
)

func errInvalidUpload(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidUpload, msg, cause)
}

func errTooManyRequests() *svcerrors.ServiceError {
	return svcerrors.NewTooManyRequestsError(codeTooManyRequests, "too many uploads, retry later")
}
