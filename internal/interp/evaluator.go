package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// signalKind discriminates why a statement/block stopped executing early
// (§4.4: "value production, control-flow unwinding ... and cleanup
// registration" are the evaluator's three orthogonal concerns — signal
// carries the second one through the statement walk).
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal is what execStmt/execBlock return alongside an error to drive
// control flow: a `return` carries its value past enclosing cleanup,
// `break`/`continue` carry only the control target (§4.4).
type signal struct {
	kind  signalKind
	value Value
}

// earlyReturn is how the `?` operator's failure branch reaches the
// enclosing function's boundary (§4.4 "?" operator): it is an ordinary Go
// error so it propagates through arbitrary expression nesting using the
// same plumbing every other evaluation error uses, but CallFunction
// recognizes it and treats it as that function's return value rather than
// a fatal diagnostic.
type earlyReturn struct{ Value Value }

func (e *earlyReturn) Error() string { return "early return via ?" }

// loopSignal is how `break`/`continue` reach back to the nearest enclosing
// loop when they occur inside a `switch`/`match` arm (which itself must
// not swallow them) — carried the same way as any other signal, no
// separate mechanism needed; kept here only as documentation anchor.

// Evaluator orchestrates the type system, value model, environment,
// dispatch, scheduler, and lifetime manager to execute a Cb program
// (§2 "Evaluator ... orchestrates all other components").
type Evaluator struct {
	Env   *runtime.Environment
	Sched *Scheduler
	Out   io.Writer

	diagnostics []*errors.Diagnostic

	// typeParamStack holds the generic-parameter bindings active for the
	// innermost in-progress generic call, consulted by resolveNamedType
	// when a type expression names a bare type parameter rather than a
	// concrete/registered type (§4.5, §4.6).
	typeParamStack []map[string]types.Type
}

func (e *Evaluator) pushTypeParams(bound map[string]types.Type) {
	e.typeParamStack = append(e.typeParamStack, bound)
}

func (e *Evaluator) popTypeParams() {
	e.typeParamStack = e.typeParamStack[:len(e.typeParamStack)-1]
}

func (e *Evaluator) lookupTypeParam(name string) (types.Type, bool) {
	for i := len(e.typeParamStack) - 1; i >= 0; i-- {
		if t, ok := e.typeParamStack[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// NewEvaluator creates an evaluator writing program output to out.
func NewEvaluator(out io.Writer) *Evaluator {
	return &Evaluator{
		Env:   runtime.NewEnvironment(),
		Sched: NewScheduler(),
		Out:   out,
	}
}

// Diagnostics returns every diagnostic collected during Run (the fatal
// root-task error, if any, plus MemoryLeak warnings at exit).
func (e *Evaluator) Diagnostics() []*errors.Diagnostic { return e.diagnostics }

func (e *Evaluator) addDiagnostic(d *errors.Diagnostic) { e.diagnostics = append(e.diagnostics, d) }

// diag builds a Diagnostic for a node, matching the teacher's practice of
// attaching file/line to every runtime failure (§6 "Diagnostics format").
func diag(kind errors.Kind, pos errorsPosLike, msg string) *errors.Diagnostic {
	return errors.New(kind, msg, "", "", toPosition(pos))
}

// errorsPosLike is satisfied by ast.Node (via Pos()) and errors.Position
// itself, so diag() can be called with either without a conversion at
// every call site.
type errorsPosLike interface{}

func toPosition(p errorsPosLike) errors.Position {
	switch v := p.(type) {
	case errors.Position:
		return v
	case ast.Node:
		return v.Pos()
	default:
		return errors.Position{}
	}
}

// Load registers every top-level declaration in program (structs, enums,
// unions, interfaces, impls, functions, typedefs, module/using directives)
// into the environment, without executing anything (§6 parser contract:
// "a root AST node whose children are top-level declarations").
func (e *Evaluator) Load(program *ast.Program) error {
	e.registerBuiltinOptionResult()

	// Pass 1: module/namespace context and typedefs/forward type shells,
	// so later passes can resolve names regardless of declaration order.
	for _, d := range program.Declarations {
		switch decl := d.(type) {
		case *ast.ModuleDecl:
			e.Env.CurrentNamespace = decl.Name
		case *ast.UsingDecl:
			e.Env.Usings = append(e.Env.Usings, decl.Namespace)
		}
	}

	for _, d := range program.Declarations {
		if err := e.loadDecl(d); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) loadDecl(d ast.Decl) error {
	switch decl := d.(type) {
	case *ast.ModuleDecl, *ast.UsingDecl, *ast.ImportDecl:
		return nil // namespace context handled in pass 1; module loading is out of scope (§1)
	case *ast.TypedefDecl:
		target, err := e.ResolveType(decl.Target)
		if err != nil {
			return err
		}
		qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
		e.Env.Types.Define(qualified, target)
		return nil
	case *ast.StructDecl:
		return e.loadStruct(decl)
	case *ast.EnumDecl:
		return e.loadEnum(decl)
	case *ast.UnionDecl:
		return e.loadUnion(decl)
	case *ast.InterfaceDecl:
		return e.loadInterface(decl)
	case *ast.ImplBlock:
		return e.loadImpl(decl)
	case *ast.FunctionDecl:
		qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
		if qualified == "Option" || qualified == "Result" {
			return fmt.Errorf("%s: cannot redefine built-in type", errors.KindRedefineBuiltin)
		}
		if builtinFunctions[decl.Name] {
			return fmt.Errorf("%s: cannot redefine built-in function %s", errors.KindRedefineBuiltin, decl.Name)
		}
		e.Env.DefineFunction(qualified, decl)
		return nil
	default:
		return fmt.Errorf("unhandled top-level declaration %T", d)
	}
}

func (e *Evaluator) loadStruct(decl *ast.StructDecl) error {
	if decl.Name == "Option" || decl.Name == "Result" {
		return fmt.Errorf("%s: cannot redefine built-in type", errors.KindRedefineBuiltin)
	}
	qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
	members := make([]types.Member, len(decl.Fields))
	for i, f := range decl.Fields {
		ft, err := e.ResolveType(f.Type)
		if err != nil {
			return err
		}
		members[i] = types.Member{Name: f.Name, Type: ft}
	}
	st := &types.Struct{QualifiedName: qualified, Members: members}
	e.Env.DefineStruct(qualified, decl, st)
	return nil
}

func (e *Evaluator) loadEnum(decl *ast.EnumDecl) error {
	if decl.Name == "Option" || decl.Name == "Result" {
		return fmt.Errorf("%s: cannot redefine built-in type", errors.KindRedefineBuiltin)
	}
	qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
	variants := make([]types.EnumVariant, len(decl.Variants))
	discriminants := make(map[string]int, len(decl.Variants))
	seen := make(map[string]bool, len(decl.Variants))
	for i, v := range decl.Variants {
		if seen[v.Name] {
			return fmt.Errorf("%s: duplicate variant %s in %s", errors.KindDuplicateEnumValue, v.Name, decl.Name)
		}
		seen[v.Name] = true
		var payload types.Type
		if v.Payload != nil {
			pt, err := e.ResolveType(v.Payload)
			if err != nil {
				return err
			}
			payload = pt
		}
		variants[i] = types.EnumVariant{Name: v.Name, Payload: payload}
		discriminants[v.Name] = i
	}
	en := &types.Enum{QualifiedName: qualified, Variants: variants, Discriminants: discriminants}
	e.Env.DefineEnum(qualified, decl, en)
	return nil
}

func (e *Evaluator) loadUnion(decl *ast.UnionDecl) error {
	qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
	allowed := make([]types.AllowedAlternative, len(decl.Alternatives))
	for i, a := range decl.Alternatives {
		if a.Type != nil {
			t, err := e.ResolveType(a.Type)
			if err != nil {
				return err
			}
			allowed[i] = types.AllowedAlternative{Kind: types.AllowedType, Type: t}
			continue
		}
		lit, err := e.evalConstExpr(a.Literal)
		if err != nil {
			return err
		}
		allowed[i] = types.AllowedAlternative{Kind: types.AllowedLiteral, Literal: lit}
	}
	un := &types.Union{QualifiedName: qualified, Allowed: allowed}
	e.Env.DefineUnion(qualified, decl, un)
	return nil
}

func (e *Evaluator) loadInterface(decl *ast.InterfaceDecl) error {
	qualified := runtime.Qualify(e.Env.CurrentNamespace, decl.Name)
	methods := make([]types.MethodSig, len(decl.Methods))
	for i, m := range decl.Methods {
		ret, err := e.ResolveType(m.Return)
		if err != nil {
			return err
		}
		params := make([]types.Param, len(m.Params))
		for j, p := range m.Params {
			pt, err := e.ResolveType(p.Type)
			if err != nil {
				return err
			}
			params[j] = types.Param{Name: p.Name, Type: pt}
		}
		methods[i] = types.MethodSig{Name: m.Name, Params: params, Return: ret}
	}
	iface := &types.Interface{Name: qualified, Methods: methods}
	e.Env.DefineInterface(qualified, decl, iface)
	return nil
}

func (e *Evaluator) loadImpl(decl *ast.ImplBlock) error {
	forType := runtime.Qualify(e.Env.CurrentNamespace, decl.For)
	ifaceName := decl.Interface
	if ifaceName != "" {
		ifaceName = runtime.Qualify(e.Env.CurrentNamespace, ifaceName)
		iface, ok := e.Env.Interface(ifaceName)
		if !ok {
			return fmt.Errorf("%s: %s", errors.KindUndefinedInterface, decl.Interface)
		}
		implemented := make(map[string]bool, len(decl.Methods))
		for _, m := range decl.Methods {
			implemented[m.Name] = true
		}
		for _, sig := range iface.Methods {
			if !implemented[sig.Name] {
				return fmt.Errorf("%s: %s missing method %s required by %s", errors.KindIncompleteImpl, decl.For, sig.Name, decl.Interface)
			}
		}
	}
	for _, m := range decl.Methods {
		e.Env.AddImpl(&runtime.MethodEntry{Decl: m, ForType: forType, Interface: ifaceName})
	}
	return nil
}

// evalConstExpr evaluates a compile-time-constant expression (union
// alternative literals). It reuses the normal expression evaluator against
// a throwaway task, since literals never touch scheduling and this task is
// never handed to the scheduler.
func (e *Evaluator) evalConstExpr(expr ast.Expression) (Value, error) {
	frame := runtime.NewFrame(e.Env.Globals())
	t := &Task{Frame: frame}
	return e.evalExpr(t, expr)
}

// registerBuiltinOptionResult seeds nothing eagerly — Option<T>/Result<T,E>
// are instantiated lazily by ResolveType on first use (typeresolve.go),
// matching generic monomorphization's on-demand caching (§4.6). This hook
// exists so Load has one place to extend builtin setup.
func (e *Evaluator) registerBuiltinOptionResult() {}

// RunProgram loads and executes program's `main` function as the root task
// (§6 CLI surface: "cb run <file>: executes the program"). It returns the
// process exit code (§7: nonzero iff the root task ended in error) and any
// diagnostics collected, including MemoryLeak warnings reported at exit.
func (e *Evaluator) RunProgram(program *ast.Program) (int, []*errors.Diagnostic) {
	if err := e.Load(program); err != nil {
		e.addDiagnostic(errors.New(errors.KindUndefinedFunction, err.Error(), "", "", errors.Position{}))
		return 1, e.diagnostics
	}

	mainDecl, ok := e.Env.Function(runtime.Qualify(e.Env.CurrentNamespace, "main"))
	if !ok {
		mainDecl, ok = e.Env.Function("main")
	}
	if !ok {
		e.addDiagnostic(errors.New(errors.KindUndefinedFunction, "no main function", "", "", errors.Position{}))
		return 1, e.diagnostics
	}

	frame := runtime.NewFrame(e.Env.Globals())
	root := e.Sched.SpawnRoot(frame, func(t *Task) {
		val, err := e.CallFunction(t, mainDecl, nil, nil, "", "")
		e.Sched.Complete(t, val, err)
	})

	runErr := e.Sched.Run()
	_ = root
	if runErr != nil {
		if d, ok := runErr.(*errors.Diagnostic); ok {
			e.addDiagnostic(d)
		} else {
			e.addDiagnostic(errors.New(errors.KindUndefinedFunction, runErr.Error(), "", "", errors.Position{}))
		}
	}

	for _, berr := range e.Sched.BackgroundErrors {
		fmt.Fprintln(os.Stderr, berr.Error())
	}

	for _, leak := range e.Env.Heap.Leaks() {
		e.addDiagnostic(errors.New(errors.KindMemoryLeak, fmt.Sprintf("heap allocation %d was never freed", leak.Handle), "", "", errors.Position{}))
	}

	return errors.ExitCode(e.diagnostics), e.diagnostics
}

// CallFunction invokes decl with args bound to its parameters (defaults
// filled in for missing trailing args, §8), receiver bound to `self` when
// non-nil (§4.5), and runs its body to completion, translating a `return`
// signal or a `?`-triggered earlyReturn into the call's result.
//
// Cb functions do not close over their caller's locals, so the call gets a
// fresh scope chain rooted directly at globals rather than nesting under
// whatever scope t happened to be running in (§4.3). t itself — and so its
// resumeCh/scheduler identity — is unchanged: the same goroutine keeps
// running, just with its Frame swapped out for the duration of the call and
// restored on return, the same way a native call stack would grow and
// shrink, which is what lets `yield`/`await` inside the callee still
// suspend/resume this task correctly.
func (e *Evaluator) CallFunction(t *Task, decl *ast.FunctionDecl, args []Value, receiver Value, forType, ifaceName string) (Value, error) {
	if decl.IsAsync {
		e.Sched.MaybeAutoYield(t)
	}

	prevFrame := t.Frame
	t.Frame = runtime.NewFrame(e.Env.Globals())
	defer func() { t.Frame = prevFrame }()

	if err := e.bindParams(t, decl, args, receiver, forType, ifaceName); err != nil {
		return nil, err
	}

	scope := t.Frame.Current()
	sig, err := e.execBlockIn(t, decl.Body, scope)
	unwindErr := scope.Unwind(func(v *runtime.Variable) error { return e.destroyVariable(t, v) })
	if err != nil {
		if er, ok := err.(*earlyReturn); ok {
			return er.Value, nil
		}
		return nil, err
	}
	if unwindErr != nil {
		return nil, unwindErr
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return &VoidValue{}, nil
}

// bindParams declares self (for methods) and each parameter in the call's
// top scope, evaluating default-value expressions for omitted trailing
// arguments (§8 NonDefaultAfterDefault is a load-time check, handled when
// the declaration is parsed/validated upstream; here we just consume
// whatever defaults exist).
func (e *Evaluator) bindParams(t *Task, decl *ast.FunctionDecl, args []Value, receiver Value, forType, ifaceName string) error {
	scope := t.Frame.Current()
	if receiver != nil {
		scope.Declare(&runtime.Variable{Name: "self", Type: receiver.Type(), Value: receiver, IsAssigned: true})
	}
	if len(args) > len(decl.Params) && !decl.Varargs {
		return fmt.Errorf("%s: %s expects %d argument(s), got %d", errors.KindArgumentCountMismatch, decl.Name, len(decl.Params), len(args))
	}
	for i, p := range decl.Params {
		var v Value
		if i < len(args) {
			v = args[i]
		} else if p.Default != nil {
			dv, err := e.evalExpr(t, p.Default)
			if err != nil {
				return err
			}
			v = dv
		} else {
			return fmt.Errorf("%s: %s missing argument %s", errors.KindArgumentCountMismatch, decl.Name, p.Name)
		}
		pt, err := e.ResolveType(p.Type)
		if err != nil {
			return err
		}
		coerced, err := e.coerce(pt, v)
		if err != nil {
			return err
		}
		scope.Declare(&runtime.Variable{Name: p.Name, Type: pt, Value: coerced, IsAssigned: true})
	}
	if decl.Varargs {
		for i := len(decl.Params); i < len(args); i++ {
			scope.Declare(&runtime.Variable{
				Name:       fmt.Sprintf("__vararg%d", i-len(decl.Params)),
				Type:       args[i].Type(),
				Value:      args[i],
				IsAssigned: true,
			})
		}
	}
	return nil
}
