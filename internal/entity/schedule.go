package entity

// ValidationResult is a single-message validation envelope used by the API
// response layer (see internal/api/response.go). The engine's own
// multi-message diagnostics live in internal/validation.Result; this type
// is the thin single-verdict wrapper HTTP handlers attach to a response.
type ValidationResult struct {
	Valid    bool                   `json:"valid"`
	Code     string                 `json:"code"`
	Severity string                 `json:"severity"` // INFO, WARNING, ERROR
	Message  string                 `json:"message"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// NewValidationResult creates a successful validation result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Code:     "VALIDATION_SUCCESS",
		Severity: "INFO",
		Message:  "Validation passed",
		Context:  make(map[string]interface{}),
	}
}

// NewValidationError creates a validation error result.
func NewValidationError(code, message string) *ValidationResult {
	return &ValidationResult{
		Valid:    false,
		Code:     code,
		Severity: "ERROR",
		Message:  message,
		Context:  make(map[string]interface{}),
	}
}

// NewValidationWarning creates a validation warning result.
func NewValidationWarning(code, message string) *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Code:     code,
		Severity: "WARNING",
		Message:  message,
		Context:  make(map[string]interface{}),
	}
}

// AddContext adds contextual information to the validation result.
func (vr *ValidationResult) AddContext(key string, value interface{}) {
	if vr.Context == nil {
		vr.Context = make(map[string]interface{})
	}
	vr.Context[key] = value
}
