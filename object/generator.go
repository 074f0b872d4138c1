// ==============================================================================================
// FILE: object/generator.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The Generator value and its suspension-frame stack, per spec.md
//          §3.5 and §4.5. A generator's body executes with the same
//          statement/block evaluator as an ordinary protocol call, but it
//          must be interruptible at any `yield`, and resumable later at the
//          exact nested position — arbitrarily deep inside blocks and
//          loops — where it paused.
// ==============================================================================================

package object

import "github.com/kei-lang/kei/ast"

// GeneratorStatus is the three-state lifecycle from spec.md §3.5.
type GeneratorStatus int

const (
	Suspended GeneratorStatus = iota
	Running
	Done
)

func (s GeneratorStatus) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	default:
		return "done"
	}
}

// FrameKind discriminates the five suspension-frame shapes a generator's
// position can be saved as, one per construct that can contain a `yield`.
type FrameKind int

const (
	BlockFrame FrameKind = iota
	CycleWhileFrame
	CycleThroughFrame
	CycleFromToFrame
	DelegateFrame
)

// Frame records exactly enough state for the evaluator to re-enter a
// suspended construct at the statement or iteration it paused at, then
// fall through to whatever follows. Frames chain via Inner: the outermost
// frame (the generator body's top-level block) holds the frame describing
// the next construct in, and so on until Inner is nil at the frame
// actually holding the `yield` statement index.
type Frame struct {
	Kind FrameKind

	// BlockFrame / generic "which statement to resume at".
	StmtIndex int

	// CycleWhileFrame carries no extra state: resuming just re-enters the
	// loop from its top, re-evaluating Condition, except the first
	// resumed iteration continues inside Inner rather than re-testing.
	ResumeFirstIteration bool

	// CycleThroughFrame: a snapshot of the remaining elements still to be
	// visited, already advanced past everything yielded before suspension.
	RemainingElements []Value
	// Set instead of RemainingElements when the iterable itself is a
	// Generator being driven by `cycle through`.
	SourceGenerator *Generator
	// Current is the loop variable's value for the in-progress iteration —
	// the one already popped off RemainingElements/SourceGenerator when
	// suspension happened. The resumed body continues in its saved scope
	// (Inner.Env), where Current is already bound; it is bound afresh only
	// when no saved scope exists.
	Current Value

	// CycleFromToFrame: the loop counter's value for the in-progress
	// iteration, and the loop's bounds.
	Counter int64
	End     int64
	Step    int64

	// DelegateFrame: the generator a `delegate` statement is forwarding to.
	Delegate *Generator

	// Env is set by whichever construct allocated a fresh enclosed scope
	// for the suspended block (a loop iteration's body, an attempt's try
	// body) so resuming continues in the SAME scope instead of losing
	// locals designated before the suspension to a freshly built one.
	Env *Environment

	Inner *Frame
}

// Generator is the value a sequence-flagged protocol call produces
// immediately, without running its body (spec.md §4.4.3).
type Generator struct {
	Fn      *Function
	Env     *Environment // the call's own environment, distinct from Fn.Env
	Self    Value        // bound receiver, for method generators
	Status  GeneratorStatus
	Stack   *Frame // nil when not currently suspended mid-body
	Body    *ast.BlockStatement

	SentValue Value
	HasSent   bool

	ThrownValue Value
	HasThrown   bool
}

func (g *Generator) Type() ObjectType { return GENERATOR_OBJ }
func (g *Generator) Truthy() bool     { return true }
func (g *Generator) Inspect() string  { return "<generator " + g.Status.String() + ">" }

// Clone deep-copies the generator's environment and suspension stack, per
// spec.md §4.3's "generators clone their environment, suspension stack,
// and saved iterables" deep-copy rule.
func (g *Generator) Clone() *Generator {
	clone := &Generator{
		Fn:     g.Fn,
		Self:   g.Self,
		Status: g.Status,
		Body:   g.Body,
	}
	clone.Env = cloneEnv(g.Env)
	clone.Stack = cloneFrame(g.Stack)
	if g.HasSent {
		clone.SentValue = DeepCopy(g.SentValue)
		clone.HasSent = true
	}
	if g.HasThrown {
		clone.ThrownValue = DeepCopy(g.ThrownValue)
		clone.HasThrown = true
	}
	return clone
}

func cloneEnv(e *Environment) *Environment {
	if e == nil {
		return nil
	}
	clone := &Environment{store: make(map[string]*binding, len(e.store))}
	for k, b := range e.store {
		clone.store[k] = &binding{value: DeepCopy(b.value), isOverride: b.isOverride}
	}
	if e.outer != nil {
		clone.outer = cloneEnv(e.outer)
		clone.global = clone.outer.global
	} else {
		clone.global = clone
	}
	return clone
}

func cloneFrame(f *Frame) *Frame {
	if f == nil {
		return nil
	}
	clone := *f
	if f.RemainingElements != nil {
		clone.RemainingElements = make([]Value, len(f.RemainingElements))
		for i, v := range f.RemainingElements {
			clone.RemainingElements[i] = DeepCopy(v)
		}
	}
	if f.SourceGenerator != nil {
		clone.SourceGenerator = f.SourceGenerator.Clone()
	}
	if f.Current != nil {
		clone.Current = DeepCopy(f.Current)
	}
	if f.Delegate != nil {
		clone.Delegate = f.Delegate.Clone()
	}
	clone.Env = cloneEnv(f.Env)
	clone.Inner = cloneFrame(f.Inner)
	return &clone
}
