package engine_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements engine.ContactFetcher.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// seqRand replays a fixed sequence of values, cycling when exhausted.
type seqRand struct {
	values []float64
	next   int
}

func newSeqRand(values ...float64) *seqRand {
	return &seqRand{values: values}
}

func (r *seqRand) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}
