package deploy

import (
	"fmt"
	"time"
)

// RunSteps executes all provisioning steps sequentially, halting on the
// first failure. A failed step leaves the partially provisioned release
// directory in place for inspection; cleanup is retention's job after a
// later successful deploy.
func RunSteps(ctx *Context, steps []Step) error {
	start := time.Now()
	ctx.Observer.Printf("Provisioning %s with %d steps...", ctx.Release.Name(), len(steps))

	for i, step := range steps {
		stepStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", step.Name(), i+1, len(steps))

		ctx.Observer.Event(Event{Type: EventStepStarted, Stage: step.Name(), Message: "starting"})
		ctx.Observer.Printf("[%s] starting", name)

		if err := step.Run(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventStepFailed, Stage: step.Name(), Message: fmt.Sprintf("failed: %v", err)})
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return &StepError{Step: step.Name(), Err: err}
		}

		ctx.Observer.Event(Event{
			Type:    EventStepCompleted,
			Stage:   step.Name(),
			Message: fmt.Sprintf("completed in %v", time.Since(stepStart).Round(time.Millisecond)),
		})
		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(stepStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
