package backend

import "fmt"

// FetchError — a read endpoint failed (transport error or non-200). Pages
// catch it at the call site, log it, and degrade to the empty state; it never
// propagates past the handler.
type FetchError struct {
	Endpoint string
	Status   int // 0 when the request never got a response
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend: GET %s -> HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("backend: GET %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConflictError — the backend rejected a create with 409. Message is shown
// to the user as-is.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InvoiceCreationError — the factura POST did not yield a generated id. No
// partial state exists; the caller reports a generic failure.
type InvoiceCreationError struct {
	Reason string
}

func (e *InvoiceCreationError) Error() string {
	return "backend: factura no creada: " + e.Reason
}
