// Package services contains stateless domain services that encode business
// rules spanning more than a single aggregate method.
//
// FailurePolicy classifies delivery-failure outcomes: it decides whether a
// failed attempt means the recipient rejected the package, the shipment gets
// one more try, or the driver's second attempt permanently failed.
package services
