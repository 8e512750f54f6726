//go:build unit || e2e

package testutil

import (
	"fmt"
	"testing"

	"court-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

// AssertErrorIs is assert.ErrorIs for errors that may carry an errs.Mark.
// testify matches with the standard library, which does not see marks.
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...any) bool {
	t.Helper()
	if errs.Is(err, target) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("error chain does not match target\nexpected: %v\nin chain: %v", target, err), msgAndArgs...)
}

func RequireErrorIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !AssertErrorIs(t, err, target, msgAndArgs...) {
		t.FailNow()
	}
}

func AssertNotErrorIs(t testing.TB, err, target error, msgAndArgs ...any) bool {
	t.Helper()
	if !errs.Is(err, target) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("error chain unexpectedly matches target\ntarget: %v\nin chain: %v", target, err), msgAndArgs...)
}
