package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/membercache/store"
)

// probeConsumerID is the consumer looked up by the store probe. The
// lookup is expected to return zero records; only its success matters.
const probeConsumerID = "health-probe"

// StoreChecker verifies the backing group store answers assignment
// lookups.
type StoreChecker struct {
	store store.GroupStore
}

// NewStoreChecker creates a checker over the given group store.
func NewStoreChecker(st store.GroupStore) *StoreChecker {
	return &StoreChecker{store: st}
}

func (c *StoreChecker) Name() string { return "group-store" }

// Check runs a probe assignment lookup against the store.
func (c *StoreChecker) Check(ctx context.Context) Result {
	if c.store == nil {
		return Unhealthy("group store not configured", nil)
	}

	records, err := c.store.FindGroupAssignments(ctx, probeConsumerID)
	if err != nil {
		return Unhealthy("group store lookup failed", err)
	}
	return Healthy(fmt.Sprintf("group store reachable (%d probe records)", len(records)))
}

var _ Checker = (*StoreChecker)(nil)
