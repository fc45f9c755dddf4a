// Package courier contains the Courier aggregate.
//
// A courier (livreur) reports a position, goes on and off shift, and is
// reserved for one order at a time through the availability flag. The
// aggregate also accumulates lifetime statistics: completed deliveries,
// earnings, and a running average rating.
package courier
