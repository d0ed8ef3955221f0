package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline errors. All of these are fatal to a meeting job.
const (
	// ErrCodeConfiguration indicates a required credential or resource is missing.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeNormalization indicates the input media could not be normalized.
	ErrCodeNormalization ErrorCode = "NORMALIZATION_FAILED"
	// ErrCodeDiarization indicates the diarization subsystem errored.
	ErrCodeDiarization ErrorCode = "DIARIZATION_FAILED"
	// ErrCodeNoSpeech indicates diarization ran successfully but found no turns.
	// Distinct from ErrCodeDiarization: the subsystem worked, the audio did not.
	ErrCodeNoSpeech ErrorCode = "NO_SPEECH_DETECTED"
	// ErrCodeTranscription indicates the whole-file transcription unit failed.
	// Per-turn transcription failures are absorbed and never carry this code.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_FAILED"
)

// General errors, used by the API surface and providers.
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// No pipeline stage performs automatic retries: a failed stage fails the unit
// of work it governs. Retryable here only informs API clients.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
