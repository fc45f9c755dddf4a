// Package errs provides the standardized error types used across the
// marketplace: validation failures, missing objects, and out-of-range values.
//
// Each error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) usable with errors.Is
//   - a struct type carrying the offending parameter and optional cause
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for error-chain inspection
//
// Domain rule violations (illegal transitions, permission failures) are NOT
// expressed through this package; those live as sentinels in their owning
// domain packages. errs covers the input-shape layer underneath them.
package errs
