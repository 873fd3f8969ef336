// Package health implements the post-activation health gate: a single
// probe round against the configured liveness endpoints whose verdict
// decides commit versus rollback.
package health

import (
	"context"
	"net/http"
	"time"
)

// Probe is one liveness endpoint.
type Probe struct {
	Name string
	URL  string
}

// ProbeResult is the outcome of a single probe.
type ProbeResult struct {
	Probe   Probe
	Healthy bool
	Status  int
	Err     error
}

// Result is the gate's verdict for one probe round.
type Result struct {
	Healthy bool
	Probes  []ProbeResult
}

// Gate probes liveness endpoints after an activation. It holds no state
// and performs no retries; repeated rounds are the orchestrator's call.
type Gate struct {
	probes      []Probe
	settleDelay time.Duration
	client      *http.Client
}

// NewGate returns a gate for the given probes. settleDelay is waited once
// before the first request so freshly reloaded processes can bind;
// timeout bounds each individual probe.
func NewGate(probes []Probe, settleDelay, timeout time.Duration) *Gate {
	return &Gate{
		probes:      probes,
		settleDelay: settleDelay,
		client:      &http.Client{Timeout: timeout},
	}
}

// Check waits the settle delay, then issues one request per probe. The
// aggregate verdict is healthy only when every probe returns a 2xx
// response. A round with no configured probes is vacuously healthy.
func (g *Gate) Check(ctx context.Context) Result {
	if g.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return Result{Healthy: false}
		case <-time.After(g.settleDelay):
		}
	}

	result := Result{Healthy: true}
	for _, probe := range g.probes {
		pr := g.check(ctx, probe)
		if !pr.Healthy {
			result.Healthy = false
		}
		result.Probes = append(result.Probes, pr)
	}
	return result
}

func (g *Gate) check(ctx context.Context, probe Probe) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe.URL, nil)
	if err != nil {
		return ProbeResult{Probe: probe, Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return ProbeResult{Probe: probe, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	return ProbeResult{
		Probe:   probe,
		Healthy: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
	}
}
