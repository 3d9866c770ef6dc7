package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"

	FieldJobID      = "job_id"
	FieldJobStatus  = "job_status"
	FieldFilename   = "filename"
	FieldSourceKey  = "source_key"
	FieldTaskHost   = "task_host"
	FieldBytesRead  = "bytes_read"
	FieldLinesRead  = "lines_parsed"
	FieldInboxPath  = "inbox_path"
	FieldClientAddr = "client_addr"
)
