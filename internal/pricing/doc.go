// Package pricing turns a service definition and a boat configuration into
// a QuoteBreakdown and renders it for display.
//
// Surcharges are applied per foot-priced service in a fixed order: hull,
// growth, propulsion, engines and, when the service says so, paint. By
// default each percentage compounds on the running price; the additive
// composition is kept for the older estimator flow.
package pricing
