// Package ramprice extracts RAM price records from vendor pages and price
// history documents.
//
// Free-form product titles are scanned for capacities, composed into the
// shorthand notation "<count>x<size>GB@$<price> <brand>" and turned back into
// validated PriceRecord values when history is loaded.
//
// This package contains domain types, the parsing core and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their dependency or their source (e.g.
// sqlite/, yaml/, microcenter/).
package ramprice
