package jobs

import (
	"errors"

	"serverlog-analyser/internal/shared/svcerrors"
)

const (
	codeValidationFailed = "JOB_1000"
	codeJobNotFound      = "JOB_4040"

	schedulingErrorPrefix = "scheduling_error: "
	internalErrorPrefix   = "internal_error: "
)

var (
	ErrNoTaskGroup        = errors.New("no task group in context")
	ErrWorkerLimitReached = errors.New("dedicated worker limit reached")
	ErrHandoffUnavailable = errors.New("dispatch queue unavailable")
)

func errValidationFailed(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, nil)
}

func errJobNotFound(jobID string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeJobNotFound, "job not found: "+jobID, nil)
}
