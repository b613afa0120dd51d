package shared

// OperationContext ties every log line and metric of one CLI invocation
// back to the operation that produced it.
//
// Example:
//
//	opCtx := NewOperationContext("mine-MINER-1-a3f8e2b1", "acquire_mining")
type OperationContext struct {
	// RunID is unique per invocation, e.g. "mine-MINER-1-a3f8e2b1"
	RunID string

	// OperationType names the workflow, e.g. "acquire_mining", "mission_deliver"
	OperationType string
}

// NewOperationContext creates a new operation context; nil if either field is empty
func NewOperationContext(runID, operationType string) *OperationContext {
	if runID == "" || operationType == "" {
		return nil
	}
	return &OperationContext{
		RunID:         runID,
		OperationType: operationType,
	}
}

// IsValid returns true if the context has required fields
func (c *OperationContext) IsValid() bool {
	return c != nil && c.RunID != "" && c.OperationType != ""
}

// Metadata returns the fields to attach to log entries
func (c *OperationContext) Metadata() map[string]interface{} {
	if !c.IsValid() {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"run_id":    c.RunID,
		"operation": c.OperationType,
	}
}

// String returns a human-readable representation of the context
func (c *OperationContext) String() string {
	if c == nil {
		return "<no context>"
	}
	return c.OperationType + ":" + c.RunID
}
