package interpreter

import (
	"github.com/tliron/commonlog"

	"jocks/ast"
	"jocks/object"
	"jocks/util"
	"jocks/value"
)

func (ev *evaluator) checkArity(fn object.Function, argc int, site ast.Pos) {
	if bound, ok := fn.(*object.BoundMethod); ok && bound.Method.Arity() == 0 {
		panic(ev.makeFault(ArityMismatch, site,
			"%v declares no receiver parameter, it cannot be called on an instance.", fn.Name()))
	}

	if fn.Arity() != argc {
		panic(ev.makeFault(ArityMismatch, site,
			"%v expects %v arguments but got %v.", fn.Name(), fn.Arity(), argc))
	}
}

// Invokes fn with already checked and evaluated arguments. The frame for
// the call is visible to any fault raised inside it and is popped however
// the call ends.
func (ev *evaluator) call(fn object.Function, args []value.Value, site ast.Pos) value.Value {
	ev.poll(site)

	if len(ev.frames) >= ev.interp.maxCallDepth {
		panic(ev.makeFault(StackOverflow, site,
			"Maximum call depth of %v exceeded calling %v.", ev.interp.maxCallDepth, fn.Name()))
	}

	ev.frames = append(ev.frames, callFrame{callee: fn.Name(), site: site})
	defer util.Pop(&ev.frames)

	debug := ev.log.AllowLevel(commonlog.Debug)
	if debug {
		ev.log.Debugf("call %v at %v:%v, depth %v", fn.Name(), site.File, site.Line, len(ev.frames))
	}

	result := ev.invoke(fn, args, site)
	if debug {
		ev.log.Debugf("return from %v: %v", fn.Name(), result)
	}

	return result
}

func (ev *evaluator) invoke(fn object.Function, args []value.Value, site ast.Pos) value.Value {
	switch f := fn.(type) {
	case *object.UserFunction:
		return ev.callUser(f, args)

	case *object.BoundMethod:
		return ev.invoke(f.Method, f.Arguments(args), site)

	case *object.NativeFunction:
		result, err := f.Call(ev.at(site), args)
		if err != nil {
			panic(ev.makeFault(NativeError, site, "%v", err))
		}
		return result

	default:
		panic(ev.makeFault(NotCallable, site, "Can not call %v.", fn.TypeName()))
	}
}

// Parameters and body share one scope, parented at the closure.
func (ev *evaluator) callUser(f *object.UserFunction, args []value.Value) value.Value {
	env := object.NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		if err := env.Create(param.Lexeme, args[i]); err != nil {
			panic(ev.makeFault(faultKindOf(err), ast.PosOf(param), sentence(err)))
		}
	}

	if sig := ev.executeBlock(f.Declaration.Body, env); !sig.isNormal() {
		return sig.value
	}

	return value.NilValue
}

// Invoker handed to natives, calls made through it originate at site.
type siteInvoker struct {
	ev   *evaluator
	site ast.Pos
}

func (ev *evaluator) at(site ast.Pos) object.Invoker {
	return siteInvoker{ev: ev, site: site}
}

func (s siteInvoker) Invoke(fn object.Function, args []value.Value) value.Value {
	s.ev.checkArity(fn, len(args), s.site)
	return s.ev.call(fn, args, s.site)
}
