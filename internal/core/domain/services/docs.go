// Package services contains stateless domain services that implement
// decisions spanning multiple aggregates: courier selection for dispatch and
// the dynamic delivery fee calculation.
package services
