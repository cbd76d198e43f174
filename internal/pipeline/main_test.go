package pipeline_test

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain checks that Default's errgroup worker pool leaves no goroutines
// running once Index returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
