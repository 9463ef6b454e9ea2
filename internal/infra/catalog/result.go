package catalog

// Result is the outcome of one upstream call: exactly one of the Ok or Err
// branches. Callers consume it once, usually through Fold.
type Result struct {
	ok      bool
	payload map[string]any
	errMsg  string
	context map[string]any
}

// Ok builds a success Result carrying the normalized payload.
func Ok(payload map[string]any) Result {
	return Result{ok: true, payload: payload}
}

// Err builds a failure Result. context carries the request-identifying
// fields (search term, product id, customer phone) so callers can report
// them without re-deriving the original input.
func Err(message string, context map[string]any) Result {
	return Result{errMsg: message, context: context}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.ok }

// ErrMessage returns the failure description, empty on the Ok branch.
func (r Result) ErrMessage() string { return r.errMsg }

// Payload returns the normalized success payload, nil on the Err branch.
func (r Result) Payload() map[string]any {
	if !r.ok {
		return nil
	}
	return r.payload
}

// Fold flattens the Result into a single map with a "success" marker: the
// payload fields on Ok, or "error" plus the identifying context fields on
// Err.
func (r Result) Fold() map[string]any {
	if r.ok {
		out := make(map[string]any, len(r.payload)+1)
		for k, v := range r.payload {
			out[k] = v
		}
		out["success"] = true
		return out
	}
	out := make(map[string]any, len(r.context)+2)
	for k, v := range r.context {
		out[k] = v
	}
	out["success"] = false
	out["error"] = r.errMsg
	return out
}
