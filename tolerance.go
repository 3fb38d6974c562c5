// Package frontier tolerance-based verification for floating-point comparisons
package frontier

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32

	// ULPTol is the maximum allowed difference in ULPs (Units in Last Place)
	ULPTol int
}

// DefaultTolerance returns the tolerance used when comparing device results
// against the reference engine. Costs accumulate one addition per path hop,
// so a relative tolerance well above machine epsilon is appropriate.
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-7,
		RelTol: 1e-4,
		ULPTol: 4,
	}
}

// StrictTolerance returns strict tolerance for short-path graphs where the
// engines should agree almost bit-for-bit.
func StrictTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-9,
		RelTol: 1e-7,
		ULPTol: 1,
	}
}

// Float32NearEqual checks if two float32 values are equal within tolerance.
// InfiniteCost sentinels compare equal only to each other.
func Float32NearEqual(a, b float32, tol ToleranceConfig) bool {
	// The unreachable sentinel must survive exactly
	if a == InfiniteCost || b == InfiniteCost {
		return a == b
	}

	// Check if exactly equal (handles ±0)
	if a == b {
		return true
	}

	diff := math.Abs(float64(a - b))

	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	if diff <= larger*float64(tol.RelTol) {
		return true
	}

	if tol.ULPTol > 0 {
		if Float32ULPDiff(a, b) <= tol.ULPTol {
			return true
		}
	}

	return false
}

// Float32ULPDiff computes the difference in ULPs between two float32 values
func Float32ULPDiff(a, b float32) int {
	aBits := math.Float32bits(a)
	bBits := math.Float32bits(b)

	// Different signs: not comparable by bit subtraction
	if (aBits^bBits)&0x80000000 != 0 {
		return math.MaxInt32
	}

	if aBits > bBits {
		return int(aBits - bBits)
	}
	return int(bBits - aBits)
}

// VerificationResult holds the outcome of comparing two cost arrays
type VerificationResult struct {
	MaxAbsError float32
	MaxRelError float32
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
}

// VerifyCosts compares two cost arrays (expected from the reference engine,
// actual from a device engine) and returns detailed results.
func VerifyCosts(expected, actual []float32, tol ToleranceConfig) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
	}

	if len(expected) != len(actual) {
		result.NumErrors = len(expected)
		return result
	}

	for i := range expected {
		if !Float32NearEqual(expected[i], actual[i], tol) {
			result.NumErrors++
			if result.FirstError == -1 {
				result.FirstError = i
			}

			absDiff := float32(math.Abs(float64(expected[i] - actual[i])))
			if absDiff > result.MaxAbsError {
				result.MaxAbsError = absDiff
			}

			if expected[i] != 0 {
				relDiff := absDiff / float32(math.Abs(float64(expected[i])))
				if relDiff > result.MaxRelError {
					result.MaxRelError = relDiff
				}
			}
		}
	}

	return result
}

// Ok reports whether the comparison found no mismatches.
func (r VerificationResult) Ok() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: all costs match within tolerance"
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d costs differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max relative error: %e\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxRelError,
		r.FirstError)
}
