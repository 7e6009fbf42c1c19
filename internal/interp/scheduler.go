package interp

import (
	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// TaskState is a Task's position in its lifecycle (§4.6, §5).
type TaskState int

const (
	TaskReady TaskState = iota
	TaskRunning
	TaskWaiting
	TaskDone
)

// FutureValue is the single-assignment cell an async call produces (§3,
// §6 "Future/async surface"). Identity-propagated per §9's Open Question
// decision: forwarding a Future across an await boundary never copies it,
// it hands along the same *FutureValue.
type FutureValue struct {
	Inner    types.Type
	Resolved bool
	Value    Value
	Err      error
	task     *Task
}

func (v *FutureValue) Type() types.Type { return &types.Future{Inner: v.Inner} }
func (v *FutureValue) String() string {
	if v.Resolved {
		return "Future(" + v.Value.String() + ")"
	}
	return "Future(pending)"
}

// IsReady reports whether the future has resolved (the `.is_ready` surface
// in §6).
func (v *FutureValue) IsReady() bool { return v.Resolved }

// Task is one cooperatively scheduled execution context (§5 GLOSSARY): its
// own call stack (Frame), scheduling state, and the Future it resolves.
type Task struct {
	ID     int
	State  TaskState
	Future *FutureValue
	Frame  *runtime.Frame

	body     func(*Task)
	resumeCh chan struct{}
	isRoot   bool
}

// turnEvent is what a task goroutine reports back to the scheduler driver
// when it stops running (the end of its current "turn").
type turnEvent struct {
	task  *Task
	kind  string // "yield", "park", "done"
	err   error
	value Value
}

// Scheduler is the single-threaded cooperative task driver (§4.6, §5): a
// FIFO ready queue, a waiting map keyed by the future a task parked on,
// and the currently running task. Despite using goroutines internally to
// get real suspend/resume semantics out of Go's call stack, at most one
// task's body is ever unblocked at a time — the turnDone/resumeCh handoff
// is the only synchronization, so there is no parallelism, matching §5's
// "concurrency is cooperative and single-threaded".
type Scheduler struct {
	ready     []*Task
	waitingOn map[*FutureValue][]*Task
	current   *Task
	turnDone  chan turnEvent
	nextID    int
	root      *Task

	// Diagnostics collected from background tasks that errored (§7:
	// "the diagnostic is emitted and the task is removed; the root task
	// continues").
	BackgroundErrors []error
}

// NewScheduler creates a scheduler with no tasks yet.
func NewScheduler() *Scheduler {
	return &Scheduler{
		waitingOn: make(map[*FutureValue][]*Task),
		turnDone:  make(chan turnEvent),
	}
}

// newTask allocates a task and starts its goroutine, which immediately
// blocks until the scheduler gives it its first turn.
func (s *Scheduler) newTask(frame *runtime.Frame, retType types.Type, body func(*Task)) *Task {
	s.nextID++
	t := &Task{
		ID:       s.nextID,
		State:    TaskReady,
		Frame:    frame,
		body:     body,
		resumeCh: make(chan struct{}),
	}
	t.Future = &FutureValue{Inner: retType, task: t}
	go func() {
		<-t.resumeCh
		t.body(t)
	}()
	return t
}

// Spawn launches a new task from an async call (§4.6 "Created by invoking
// an async function"). The task is appended to the ready queue; body must
// itself report completion via s.Complete before returning.
func (s *Scheduler) Spawn(frame *runtime.Frame, retType types.Type, body func(*Task)) *FutureValue {
	t := s.newTask(frame, retType, body)
	s.ready = append(s.ready, t)
	return t.Future
}

// SpawnRoot creates the program's root task (§4.6 "One task is the
// 'root' task"). It is not placed on the ready queue by this call; Run
// starts it directly.
func (s *Scheduler) SpawnRoot(frame *runtime.Frame, body func(*Task)) *Task {
	t := s.newTask(frame, types.Void, body)
	t.isRoot = true
	s.root = t
	return t
}

// Run drives the root task (and any tasks it spawns) to completion. Per
// §4.6 "Cancellation and program exit": once the root task finishes, the
// program ends — unawaited background tasks may be left mid-execution.
func (s *Scheduler) Run() error {
	s.runTask(s.root)
	for s.root.State != TaskDone && len(s.ready) > 0 {
		next := s.ready[0]
		s.ready = s.ready[1:]
		s.runTask(next)
	}
	return s.root.Future.Err
}

// runTask gives t the turn: unblocks its goroutine and waits for it to
// yield, park, or finish.
func (s *Scheduler) runTask(t *Task) {
	s.current = t
	t.State = TaskRunning
	t.resumeCh <- struct{}{}
	ev := <-s.turnDone
	s.current = nil

	switch ev.kind {
	case "yield":
		t.State = TaskReady
		s.ready = append(s.ready, t)
	case "park":
		t.State = TaskWaiting
		// waitingOn registration already performed by Await before it sent
		// the event, so there is nothing further to do here.
	case "done":
		t.State = TaskDone
		t.Future.Resolved = true
		t.Future.Value = ev.value
		t.Future.Err = ev.err
		if ev.err != nil && !t.isRoot {
			s.BackgroundErrors = append(s.BackgroundErrors, ev.err)
		}
		s.wakeWaiters(t.Future)
	}
}

// wakeWaiters moves every task parked on f back onto the ready queue,
// preserving the order they parked in (§4.6 "moves all parked waiters
// back to the ready queue preserving their waiting order").
func (s *Scheduler) wakeWaiters(f *FutureValue) {
	waiters := s.waitingOn[f]
	delete(s.waitingOn, f)
	s.ready = append(s.ready, waiters...)
}

// Complete ends t's current turn with a result, to be called from the
// goroutine that is t's body right before returning.
func (s *Scheduler) Complete(t *Task, value Value, err error) {
	s.turnDone <- turnEvent{task: t, kind: "done", value: value, err: err}
}

// Yield implements the explicit `yield` statement and the automatic yield
// insertion points (§4.6): if another task is ready, suspend t to the
// tail of the ready queue and let the scheduler run it; otherwise this is
// a no-op, since there is nothing else to interleave with.
func (s *Scheduler) Yield(t *Task) {
	if len(s.ready) == 0 {
		return
	}
	s.turnDone <- turnEvent{task: t, kind: "yield"}
	<-t.resumeCh
}

// Await suspends t until future resolves, per §4.6: "if resolved,
// immediately yields the stored value. Otherwise, the current task is
// parked in the waiting map ... scheduler selects the next ready task".
func (s *Scheduler) Await(t *Task, future *FutureValue) (Value, error) {
	if future.Resolved {
		return future.Value, future.Err
	}
	s.waitingOn[future] = append(s.waitingOn[future], t)
	s.turnDone <- turnEvent{task: t, kind: "park"}
	<-t.resumeCh
	return future.Value, future.Err
}

// MaybeAutoYield performs the implicit yield check (§4.6 "Automatic yield
// insertion"). It is called before each statement a spawned (non-root) task
// executes, at every loop iteration in any task, and on entry to an async
// function. It is a thin
// wrapper over Yield shared by every call site so the condition ("other
// tasks are ready") lives in one place.
func (s *Scheduler) MaybeAutoYield(t *Task) {
	s.Yield(t)
}
