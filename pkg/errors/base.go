package errors

// baseError is the common fluent-builder core every domain error type in
// this package embeds: a wrapped cause, a message, an ErrorCode, and a
// lazily-allocated bag of structured details for logging.
type baseError struct {
	cause   error
	message string
	code    ErrorCode
	details map[string]any
}

// NewBaseError wraps err under code with the given message.
func NewBaseError(err error, code ErrorCode, msg string) *baseError {
	return &baseError{cause: err, code: code, message: msg}
}

// WithMessage replaces the error message.
func (be *baseError) WithMessage(msg string) *baseError {
	be.message = msg
	return be
}

// WithCode replaces the error code.
func (be *baseError) WithCode(code ErrorCode) *baseError {
	be.code = code
	return be
}

// WithDetail attaches a key/value pair of structured context, allocating
// the details map on first use.
func (be *baseError) WithDetail(key string, value any) *baseError {
	if be.details == nil {
		be.details = make(map[string]any)
	}
	be.details[key] = value
	return be
}

// Error implements the error interface.
func (b *baseError) Error() string {
	return b.message
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (b *baseError) Unwrap() error {
	return b.cause
}

// Code returns the error's ErrorCode.
func (b *baseError) Code() ErrorCode {
	return b.code
}

// Details returns the error's structured context, or nil if none was set.
func (b *baseError) Details() map[string]any {
	return b.details
}
