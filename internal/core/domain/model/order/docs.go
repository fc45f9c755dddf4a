// Package order contains the Order aggregate and its status state machine.
//
// The aggregate is the single authority over the order lifecycle: which
// status transitions are legal, which roles may trigger each one, whether the
// acting party is bound to the order, when cancellation is allowed, and the
// confirmation code check on delivery. Application handlers load the
// aggregate, invoke exactly one mutation, and persist the result together
// with the StatusChange audit record it produced.
package order
