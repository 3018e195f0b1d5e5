package agents

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bertram-labs/blog-agent/internal/llm"
)

// Runner executes agent calls on a fixed-size worker pool. The pool lives
// for the runner's lifetime and is shared by all stages and requests; it
// exists to give every blocking provider call an isolated goroutine, not
// for intra-request parallelism.
type Runner struct {
	client    llm.Client
	tasks     chan func()
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewRunner starts a runner with PoolSize workers over the given client.
func NewRunner(client llm.Client) *Runner {
	r := &Runner{
		client: client,
		tasks:  make(chan func()),
	}
	for i := 0; i < PoolSize; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for task := range r.tasks {
				task()
			}
		}()
	}
	return r
}

// Run executes one fully rendered prompt against the named agent.
// The call is submitted to the pool and awaited up to the descriptor's
// timeout; provider failures come back as *Error, timeouts as
// *TimeoutError. An in-flight call is never interrupted, only abandoned.
func (r *Runner) Run(ctx context.Context, d Descriptor, prompt string) (string, error) {
	timeout := d.timeout()
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	task := func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("panic in agent call: %v", p)}
			}
		}()
		var (
			text string
			err  error
		)
		if d.UseSearch {
			text, err = r.client.GenerateWithSearch(callCtx, prompt, d.Tier)
		} else {
			text, err = r.client.GenerateContent(callCtx, prompt, d.Tier)
		}
		done <- outcome{text: text, err: err}
	}

	select {
	case r.tasks <- task:
	case <-callCtx.Done():
		return "", ctxError(callCtx, d)
	}

	select {
	case o := <-done:
		if o.err != nil {
			if errors.Is(o.err, context.DeadlineExceeded) {
				return "", &TimeoutError{Agent: d.Name, Timeout: timeout}
			}
			return "", &Error{Agent: d.Name, Cause: o.err}
		}
		return o.text, nil
	case <-callCtx.Done():
		return "", ctxError(callCtx, d)
	}
}

func ctxError(ctx context.Context, d Descriptor) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Agent: d.Name, Timeout: d.timeout()}
	}
	return &Error{Agent: d.Name, Cause: ctx.Err()}
}

// Close drains the pool. In-flight calls complete before workers exit.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.tasks)
		r.wg.Wait()
	})
}
