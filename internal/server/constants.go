package server

import "time"

// Route paths
const (
	RouteUpload  = "/upload"
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)

// Multipart form fields
const (
	FormFieldFile   = "uploadfile"
	FormFieldTarget = "target"
)

// Client-facing error messages
const (
	ErrMsgFileError    = "file error"
	ErrMsgFileTooLarge = "file too large"
	ErrMsgSaveError    = "save error"
	ErrMsgReadError    = "read error"
	ErrMsgNotFound     = "file not found"
)

// HeaderRequestID carries the request ID in and out.
const HeaderRequestID = "X-Request-ID"

// FallbackUploadName is used when the client's filename sanitizes to nothing.
const FallbackUploadName = "upload.txt"

// Server timeouts
const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 30 * time.Second
	IdleTimeout       = 60 * time.Second
)
