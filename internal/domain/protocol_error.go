package domain

// JSON-RPC 2.0 error codes returned to the host.
const (
	ErrCodeInvalidRequest int64 = -32600
	ErrCodeMethodNotFound int64 = -32601
	ErrCodeInvalidParams  int64 = -32602
	ErrCodeInternal       int64 = -32603
)

// ProtocolCode maps an error classification to its JSON-RPC error code.
func ProtocolCode(code ErrorCode) int64 {
	switch code {
	case CodeInvalidRequest:
		return ErrCodeInvalidRequest
	case CodeMethodNotFound:
		return ErrCodeMethodNotFound
	case CodeInvalidParams:
		return ErrCodeInvalidParams
	default:
		return ErrCodeInternal
	}
}

// ProtocolCodeOf maps err to its JSON-RPC error code. Unclassified errors
// are internal.
func ProtocolCodeOf(err error) int64 {
	code, ok := CodeFrom(err)
	if !ok {
		return ErrCodeInternal
	}
	return ProtocolCode(code)
}
