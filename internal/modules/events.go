package modules

import (
	"sort"

	"github.com/google/uuid"

	"github.com/oinkcat/scripting-lang/internal/config"
	"github.com/oinkcat/scripting-lang/internal/evaluator"
)

// defaultQueueSize bounds how many undispatched events the host may
// post ahead of the loop.
const defaultQueueSize = 64

type event struct {
	id      string
	name    string
	payload map[string]string
}

// Dispatcher owns the event queue and the handler table of the
// `events` native module. The script side (SetHandler, StartLoop) runs
// on the single script goroutine; the host side (Post, Close) may run
// on any goroutine and only touches the queue channel.
type Dispatcher struct {
	eval     *evaluator.Evaluator
	queue    chan event
	handlers map[string]evaluator.Object
}

func NewDispatcher(eval *evaluator.Evaluator) *Dispatcher {
	return &Dispatcher{
		eval:     eval,
		queue:    make(chan event, defaultQueueSize),
		handlers: make(map[string]evaluator.Object),
	}
}

// Post enqueues a host event for dispatch. Every event is stamped with
// a unique id, available to the handler as the `_id` payload field.
func (d *Dispatcher) Post(name string, payload map[string]string) {
	d.queue <- event{id: uuid.NewString(), name: name, payload: payload}
}

// Close signals that no further events are expected; StartLoop returns
// after draining the queue.
func (d *Dispatcher) Close() {
	close(d.queue)
}

// Module builds the `events` native module backed by this dispatcher.
func (d *Dispatcher) Module() *evaluator.Module {
	return &evaluator.Module{
		Name: "events",
		Attrs: map[string]evaluator.Object{
			"Start": &evaluator.String{Value: config.EventStart},
			"Stop":  &evaluator.String{Value: config.EventStop},
			"SetHandler": &evaluator.Builtin{
				Name: "SetHandler",
				Fn:   d.setHandler,
			},
			"StartLoop": &evaluator.Builtin{
				Name: "StartLoop",
				Fn:   d.startLoop,
			},
		},
	}
}

func (d *Dispatcher) setHandler(args ...evaluator.Object) evaluator.Object {
	if len(args) != 2 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "SetHandler takes 2 argument(s)",
		}
	}
	name, ok := args[0].(*evaluator.String)
	if !ok {
		return &evaluator.Error{
			Kind:    evaluator.TypeError,
			Message: "event name must be a string",
		}
	}
	switch args[1].(type) {
	case *evaluator.Function, *evaluator.Builtin:
	default:
		return &evaluator.Error{
			Kind:    evaluator.TypeError,
			Message: "event handler must be a function reference",
		}
	}

	d.handlers[name.Value] = args[1]
	return evaluator.NULL
}

// startLoop blocks the script and dispatches queued events one at a
// time until the host closes the dispatcher. Handlers run strictly
// sequentially; events without a registered handler are ignored.
func (d *Dispatcher) startLoop(args ...evaluator.Object) evaluator.Object {
	if len(args) != 0 {
		return &evaluator.Error{
			Kind:    evaluator.ArityError,
			Message: "StartLoop takes no arguments",
		}
	}

	for ev := range d.queue {
		handler, ok := d.handlers[ev.name]
		if !ok {
			continue
		}
		result := d.eval.ApplyFunction(handler, []evaluator.Object{eventArg(ev)})
		if result.Type() == evaluator.ERROR_OBJ {
			return result
		}
	}
	return evaluator.NULL
}

// eventArg builds the single hash argument a handler receives: the
// payload fields in sorted key order, preceded by the event id.
func eventArg(ev event) *evaluator.Hash {
	hash := evaluator.NewHash()
	hash.Set("_id", &evaluator.String{Value: ev.id})

	keys := make([]string, 0, len(ev.payload))
	for k := range ev.payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		hash.Set(k, &evaluator.String{Value: ev.payload[k]})
	}
	return hash
}
