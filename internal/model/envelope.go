package model

// Envelope is the uniform wrapper returned for every tool invocation.
// Invariants: Success implies Error is nil; failure implies Data is nil.
// Error carries a machine-distinguishable code, Message the human-readable
// explanation.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Message string  `json:"message"`
	Error   *string `json:"error"`
}

// SuccessEnvelope wraps data in a successful envelope.
func SuccessEnvelope(data any, message string) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// ErrorEnvelope builds a failed envelope with a machine-readable error code.
func ErrorEnvelope(code, message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Error:   &code,
	}
}
