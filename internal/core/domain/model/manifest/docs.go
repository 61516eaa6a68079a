// Package manifest implements the delivery-sheet ("hoja de reparto")
// aggregate: the daily grouping of shipments assigned to one driver, vehicle,
// and route.
package manifest
