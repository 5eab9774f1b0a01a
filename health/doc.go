// Package health provides readiness checks for the membership cache
// stack: the backing group store and an optional Redis cache tier.
//
// Checkers are registered on a Registry and evaluated together; the
// embedding gateway exposes the overall status through its own probe
// endpoint.
//
//	reg := health.NewRegistry()
//	reg.Register(health.NewStoreChecker(groupStore))
//	reg.Register(health.NewRedisChecker(redisClient))
//
//	results := reg.CheckAll(ctx)
//	if health.Overall(results) != health.StatusHealthy {
//	    // fail the readiness probe
//	}
package health
