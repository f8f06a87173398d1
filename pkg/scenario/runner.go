package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/dragdrop/errors"
	"github.com/grovetools/dragdrop/pkg/backend/testbackend"
	"github.com/grovetools/dragdrop/pkg/dnd"
	"github.com/grovetools/dragdrop/pkg/profiling"
)

// StepResult records the outcome of one step.
type StepResult struct {
	Index  int             `json:"index" yaml:"index"`
	Action Action          `json:"action" yaml:"action"`
	Error  errors.ErrorCode `json:"error,omitempty" yaml:"error,omitempty"`
	// Calls lists handler invocations made during the step, as
	// "<method>:<name>".
	Calls    []string     `json:"calls,omitempty" yaml:"calls,omitempty"`
	Snapshot dnd.Snapshot `json:"snapshot" yaml:"snapshot"`
	// Source and Targets are Snapshot's ids translated back to names.
	Source  string   `json:"source,omitempty" yaml:"source,omitempty"`
	Targets []string `json:"targets" yaml:"targets"`
}

// Result is the record of a run.
type Result struct {
	Name  string       `json:"name" yaml:"name"`
	Steps []StepResult `json:"steps" yaml:"steps"`
	// Notifications counts store change notifications over the run.
	Notifications int  `json:"notifications" yaml:"notifications"`
	Passed        bool `json:"passed" yaml:"passed"`
}

type runner struct {
	scenario *Scenario
	manager  *dnd.Manager
	backend  *testbackend.Backend

	ids   map[string]dnd.Identifier
	names map[dnd.Identifier]string
	calls []string
}

// Run replays s on a fresh manager. It stops at the first step whose error
// does not match its expect_error and returns the partial result together
// with a STEP_FAILED error.
func Run(s *Scenario, log *logrus.Entry) (*Result, error) {
	opts := []dnd.Option{}
	if log != nil {
		opts = append(opts, dnd.WithLogger(log))
	}
	manager, backend := testbackend.NewManager(opts...)
	defer manager.Teardown()

	r := &runner{
		scenario: s,
		manager:  manager,
		backend:  backend,
		ids:      make(map[string]dnd.Identifier),
		names:    make(map[dnd.Identifier]string),
	}
	result := &Result{Name: s.Name}
	unsubscribe := manager.Subscribe(func() { result.Notifications++ })
	defer unsubscribe()

	for _, spec := range s.Sources {
		if spec.Deferred {
			continue
		}
		if err := r.addSource(spec.Name); err != nil {
			return result, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "failed to register source "+spec.Name)
		}
	}
	for _, spec := range s.Targets {
		if spec.Deferred {
			continue
		}
		if err := r.addTarget(spec.Name); err != nil {
			return result, errors.Wrap(err, errors.ErrCodeScenarioInvalid, "failed to register target "+spec.Name)
		}
	}

	for i, step := range s.Steps {
		r.calls = nil
		span := profiling.Start(fmt.Sprintf("step %d %s", i, step.Action))
		err := r.exec(step)
		span.Stop()

		res := StepResult{
			Index:    i,
			Action:   step.Action,
			Error:    errors.GetCode(err),
			Calls:    r.calls,
			Snapshot: manager.Snapshot(),
		}
		res.Source = r.names[res.Snapshot.SourceID]
		res.Targets = r.nameAll(res.Snapshot.TargetIDs)
		result.Steps = append(result.Steps, res)

		if mismatch := checkExpectation(step, err); mismatch != nil {
			return result, errors.StepFailed(i, string(step.Action), mismatch)
		}
	}

	result.Passed = true
	return result, nil
}

func checkExpectation(step Step, err error) error {
	want := errors.ErrorCode(step.ExpectError)
	switch {
	case want == "" && err != nil:
		return err
	case want != "" && err == nil:
		return fmt.Errorf("expected error %s, step succeeded", want)
	case want != "" && errors.GetCode(err) != want:
		return fmt.Errorf("expected error %s, got %s: %w", want, errors.GetCode(err), err)
	}
	return nil
}

func (r *runner) exec(step Step) error {
	switch step.Action {
	case ActionBeginDrag:
		publish := step.Publish == nil || *step.Publish
		return r.backend.SimulateBeginDrag(r.resolve(step.Sources), &dnd.BeginDragOptions{
			PublishSource: publish,
			ClientOffset:  toCoord(step.ClientOffset),
		})
	case ActionPublish:
		return r.backend.SimulatePublishDragSource()
	case ActionHover:
		return r.backend.SimulateHover(r.resolve(step.Targets), &dnd.HoverOptions{
			ClientOffset: toCoord(step.ClientOffset),
		})
	case ActionDrop:
		return r.backend.SimulateDrop()
	case ActionEndDrag:
		return r.backend.SimulateEndDrag()
	case ActionAddSource:
		return r.addSource(step.Name)
	case ActionAddTarget:
		return r.addTarget(step.Name)
	case ActionRemoveSource:
		return r.manager.GetRegistry().RemoveSource(r.id(step.Name))
	case ActionRemoveTarget:
		return r.manager.GetRegistry().RemoveTarget(r.id(step.Name))
	}
	return invalid("unknown action '%s'", step.Action)
}

func toCoord(o *Offset) *dnd.XYCoord {
	if o == nil {
		return nil
	}
	return &dnd.XYCoord{X: o.X, Y: o.Y}
}

// id maps a name to its latest identifier. Names never registered map to
// an identifier the registry cannot know.
func (r *runner) id(name string) dnd.Identifier {
	if id, ok := r.ids[name]; ok {
		return id
	}
	return dnd.Identifier("unregistered:" + name)
}

func (r *runner) resolve(names []string) []dnd.Identifier {
	ids := make([]dnd.Identifier, len(names))
	for i, name := range names {
		ids[i] = r.id(name)
	}
	return ids
}

func (r *runner) nameAll(ids []dnd.Identifier) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = r.names[id]
	}
	return names
}

func (r *runner) record(method string, id dnd.Identifier) {
	r.calls = append(r.calls, method+":"+r.names[id])
}

func (r *runner) addSource(name string) error {
	spec := r.sourceSpec(name)
	source := &dnd.SourceFuncs{
		CanDragFunc: func(_ dnd.Monitor, id dnd.Identifier) bool {
			r.record("canDrag", id)
			return spec.CanDrag == nil || *spec.CanDrag
		},
		BeginDragFunc: func(_ dnd.Monitor, id dnd.Identifier) any {
			r.record("beginDrag", id)
			return spec.Item
		},
		EndDragFunc: func(_ dnd.Monitor, id dnd.Identifier) {
			r.record("endDrag", id)
		},
	}
	id, err := r.manager.GetRegistry().AddSource(dnd.ItemType(spec.Type), source)
	if err != nil {
		return err
	}
	r.ids[name] = id
	r.names[id] = name
	return nil
}

func (r *runner) addTarget(name string) error {
	spec := r.targetSpec(name)
	target := &dnd.TargetFuncs{
		CanDropFunc: func(_ dnd.Monitor, id dnd.Identifier) bool {
			r.record("canDrop", id)
			return spec.CanDrop == nil || *spec.CanDrop
		},
		HoverFunc: func(_ dnd.Monitor, id dnd.Identifier) {
			r.record("hover", id)
		},
		DropFunc: func(_ dnd.Monitor, id dnd.Identifier) any {
			r.record("drop", id)
			return spec.DropResult
		},
	}
	types := make(dnd.TypeSet, len(spec.Types))
	for i, t := range spec.Types {
		types[i] = dnd.ItemType(t)
	}
	id, err := r.manager.GetRegistry().AddTarget(types, target)
	if err != nil {
		return err
	}
	r.ids[name] = id
	r.names[id] = name
	return nil
}

func (r *runner) sourceSpec(name string) SourceSpec {
	for _, s := range r.scenario.Sources {
		if s.Name == name {
			return s
		}
	}
	return SourceSpec{Name: name}
}

func (r *runner) targetSpec(name string) TargetSpec {
	for _, t := range r.scenario.Targets {
		if t.Name == name {
			return t
		}
	}
	return TargetSpec{Name: name}
}
