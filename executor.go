package strand

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/strand/types"
)

// execution is the state of one logical request: the effective consistency
// (which a policy may downgrade), the hosts tried so far, and the attempt
// counter. Attempts for a single execution are strictly sequential.
type execution struct {
	client      *Client
	stmt        *types.Statement
	consistency types.Consistency
	required    int
	requestID   string
	tried       map[types.Host]struct{}
	attempt     int
}

func newExecution(c *Client, stmt *types.Statement) *execution {
	e := &execution{
		client:      c,
		stmt:        stmt,
		consistency: stmt.Consistency,
		requestID:   uuid.NewString(),
		tried:       make(map[types.Host]struct{}),
	}
	rf := c.topology.ReplicationFactor(stmt.Keyspace)
	e.required = RequiredReplicas(e.consistency, rf)

	return e
}

// run drives the attempt loop to a terminal outcome.
func (e *execution) run(ctx context.Context) (*Result, error) {
	cfg := e.client.config

	var (
		host     types.Host
		sameHost bool
		lastErr  error
	)

	for {
		if !sameHost {
			h, ok := e.client.selector.Next(e.tried)
			if !ok {
				if lastErr != nil {
					return e.terminal(lastErr)
				}

				return e.terminal(&types.ConnectionError{Cause: types.ErrNoHostAvailable})
			}
			host = h
		}
		sameHost = false
		e.tried[host] = struct{}{}
		e.attempt++

		res, err := e.dispatch(ctx, host)
		if err == nil {
			return e.success(res)
		}

		// A dead caller context terminates the request without a verdict;
		// nothing is recorded.
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, err
		}
		lastErr = err

		decision := cfg.RetryPolicy.Decide(err, e.stmt, e.attempt, len(e.tried), e.client.selector.Size())

		switch decision.Type {
		case types.RetrySameHost:
			e.noteRetry(host, decision, err)
			if serr := sleepCtx(ctx, decision.Delay); serr != nil {
				return nil, serr
			}
			sameHost = true
		case types.RetryNextHost:
			e.noteRetry(host, decision, err)
			if serr := sleepCtx(ctx, decision.Delay); serr != nil {
				return nil, serr
			}
		case types.Ignore:
			return e.ignored(err)
		default:
			return e.terminal(err)
		}
	}
}

// dispatch performs one network round trip and classifies the outcome.
func (e *execution) dispatch(ctx context.Context, host types.Host) (*Result, error) {
	timeout := e.effectiveTimeout()

	attemptCtx := ctx
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	e.client.config.Logger.Debug("dispatching request",
		"request_id", e.requestID,
		"host", host.String(),
		"attempt", e.attempt,
		"consistency", e.consistency.String(),
		"timeout", timeout,
	)

	env, err := e.client.transport.Send(attemptCtx, host, e.stmt, e.consistency)
	if err != nil {
		return nil, e.mapSendError(ctx, attemptCtx, host, err)
	}

	res, cerr := Classify(env)
	// The coordinator answered; the host itself is healthy even when the
	// verdict is a failure.
	e.recordHost(host, true)

	return res, cerr
}

// mapSendError turns a transport error into the outcome for this attempt.
func (e *execution) mapSendError(ctx, attemptCtx context.Context, host types.Host, err error) error {
	// Caller cancellation wins over everything else.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	e.recordHost(host, false)

	var pde *types.ProtocolDecodeError
	if errors.As(err, &pde) {
		return pde
	}

	var ce *types.ConnectionError
	if errors.As(err, &ce) {
		return ce
	}

	// The attempt timer expired without a coordinator verdict. This is a
	// client-observed timeout, synthesized in the shape of the statement's
	// kind and classified identically to a coordinator-reported one.
	if attemptCtx.Err() != nil {
		return e.localTimeout()
	}

	return &types.ConnectionError{Endpoint: host, Cause: err}
}

// localTimeout synthesizes the timeout error for a client-observed expiry.
// Received is zero: no replica acknowledgment was observed by this client.
func (e *execution) localTimeout() error {
	if e.stmt.EffectiveKind() == types.KindRead {
		return &types.ReadTimeout{
			Consistency: e.consistency,
			Received:    0,
			Required:    e.required,
			DataPresent: false,
		}
	}

	wt := types.WriteTypeSimple
	if e.stmt.Conditional {
		wt = types.WriteTypeCAS
	}

	return &types.WriteTimeout{
		Consistency: e.consistency,
		Received:    0,
		Required:    e.required,
		WriteType:   wt,
	}
}

// effectiveTimeout resolves the per-attempt timeout: statement override,
// else client default; types.NoTimeout disables the timer entirely.
func (e *execution) effectiveTimeout() time.Duration {
	switch {
	case e.stmt.Timeout == types.NoTimeout:
		return 0
	case e.stmt.Timeout > 0:
		return e.stmt.Timeout
	default:
		return e.client.config.DefaultTimeout
	}
}

// noteRetry records one retry decision: the retries counter, an optional
// consistency downgrade, and a log line. Failure counters are not touched;
// only terminal outcomes count.
func (e *execution) noteRetry(host types.Host, decision types.RetryDecision, err error) {
	e.client.registry.IncRetry()
	e.client.config.Metrics.IncRetry()

	if decision.Consistency != nil && *decision.Consistency != e.consistency {
		e.consistency = *decision.Consistency
		rf := e.client.topology.ReplicationFactor(e.stmt.Keyspace)
		e.required = RequiredReplicas(e.consistency, rf)
	}

	e.client.config.Logger.Debug("retrying request",
		"request_id", e.requestID,
		"host", host.String(),
		"attempt", e.attempt,
		"decision", decision.Type.String(),
		"consistency", e.consistency.String(),
		"error", err,
	)
}

// success records the terminal success and returns the result.
func (e *execution) success(res *Result) (*Result, error) {
	e.client.registry.IncSuccess()
	e.client.config.Metrics.IncSuccess()

	return res, nil
}

// ignored swallows the failure per policy verdict and completes the
// request with an empty result.
func (e *execution) ignored(err error) (*Result, error) {
	e.client.registry.IncIgnore()
	e.client.config.Metrics.IncIgnore()
	e.client.config.Logger.Debug("ignoring failed request",
		"request_id", e.requestID,
		"error", err,
	)

	return &Result{}, nil
}

// terminal records the terminal failure exactly once and surfaces the
// specific typed error to the caller.
func (e *execution) terminal(err error) (*Result, error) {
	e.recordFailure(err)
	e.client.config.Logger.Warn("request failed",
		"request_id", e.requestID,
		"attempts", e.attempt,
		"error", err,
	)

	return nil, err
}

// recordFailure increments the one counter matching the failure kind.
func (e *execution) recordFailure(err error) {
	reg := e.client.registry
	col := e.client.config.Metrics

	switch err.(type) {
	case *types.ConnectionError:
		reg.IncConnectionError()
		col.IncConnectionError()
	case *types.WriteTimeout:
		reg.IncWriteTimeout()
		col.IncWriteTimeout()
	case *types.ReadTimeout:
		reg.IncReadTimeout()
		col.IncReadTimeout()
	case *types.Unavailable:
		reg.IncUnavailable()
		col.IncUnavailable()
	case *types.WriteFailure:
		reg.IncWriteFailure()
		col.IncWriteFailure()
	case *types.ReadFailure:
		reg.IncReadFailure()
		col.IncReadFailure()
	case *types.FunctionFailure:
		reg.IncFunctionFailure()
		col.IncFunctionFailure()
	default:
		reg.IncOtherError()
		col.IncOtherError()
	}
}

// recordHost reports host health to the selector when it tracks it.
func (e *execution) recordHost(host types.Host, ok bool) {
	if e.client.recorder == nil {
		return
	}
	if ok {
		e.client.recorder.RecordSuccess(host)
	} else {
		e.client.recorder.RecordFailure(host)
	}
}
