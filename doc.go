// Package mepreal builds the historical series of Argentina's implied "MEP"
// dollar rate re-expressed in constant purchasing power, so that prices from
// different years can be compared in today's pesos.
//
// The core is a small reconciliation pipeline:
//   - Series fetching: provider clients (see the bcra, data912, argentinadatos,
//     datosgobar and yahoo packages) retrieve raw time series over HTTP and
//     normalize them into clean, sorted (date, value) observations.
//   - Nominal composition: a Composer turns those series into a single nominal
//     rate, either passing a quoted rate through or taking the price ratio of
//     the same instrument traded in pesos and in dollars.
//   - Price index: an Indexer retrieves the monthly price index and may extend
//     it with officially published month-over-month changes the upstream
//     aggregator has not ingested yet.
//   - Adjustment: AdjustToLatest joins both series as-of backward and rescales
//     every nominal observation to the purchasing power of the latest index
//     value.
//
// Every run fetches fresh data (modulo a short-lived disk cache, see the
// httpcache package), computes the full adjusted table and hands it to the
// render package. Nothing is persisted between runs.
//
// This package serves as the foundational logic for the `mep` command-line
// tool.
package mepreal
