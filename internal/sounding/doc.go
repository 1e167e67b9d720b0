// Package sounding converts raw CPTu (piezocone penetration test) field
// records into normalized soil classification parameters.
//
// The pipeline runs five stages in sequence, each a pure transform that
// produces a new table from the previous one:
//
//  1. Loader: parse a header-bearing table of float64 columns, validate the
//     required schema and synthesize the baseline pore pressure when absent.
//  2. Cleaner: remove or value-replace rows flagged by sentinel codes.
//  3. Depth adjuster (optional): regenerate a regular depth progression.
//  4. Stress computer: total/effective stress, corrected resistance, and
//     normalized friction and pore-pressure ratios, with optional smoothing.
//  5. Behavior solver: per-row fixed-point iteration for the stress
//     exponent, normalized resistance and soil behavior index.
//
// Stages never mutate their input; row order is preserved everywhere except
// the cleaner's remove operation, which may drop rows. NaN and infinity are
// valid recorded results, never errors.
package sounding
