package hyperliquid

import "fmt"

// FetchError signals that one of the info queries failed, either at the
// transport level or with a non-200 status. The caller must treat the whole
// dataset as unavailable: a successful sibling query is discarded.
type FetchError struct {
	Query  string // "userFills" or "userFunding"
	Status int    // HTTP status, 0 on transport failure
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("hyperliquid: %s query failed with status %d", e.Query, e.Status)
	}
	return fmt.Sprintf("hyperliquid: %s query failed: %v", e.Query, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
