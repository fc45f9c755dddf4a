// Package pricing contains the value objects of the dynamic delivery fee
// model: the base tariff, delivery zones, time/weather/demand multiplier
// rules, vehicle adjustments, fixed bonuses, and the Quote record.
//
// The calculation itself lives in the services package; this package only
// holds the data the engine consumes and produces.
package pricing
