package evaluator

import (
	"fmt"
	"math"

	"github.com/funvibe/vela/internal/config"
)

// Builtins returns a fresh standard builtin set.
func Builtins() []*Builtin {
	return []*Builtin{
		NewBuiltin(config.PrintFuncName, []string{"value"}, builtinPrint),
		NewBuiltin(config.PrintRetFuncName, []string{"value"}, builtinStr),
		NewBuiltin(config.StrFuncName, []string{"value"}, builtinStr),
		NewBuiltin(config.LenFuncName, []string{"value"}, builtinLen),
		NewBuiltin(config.AppendFuncName, []string{"list", "value"}, builtinAppend),
		NewBuiltin(config.PopFuncName, []string{"list", "index"}, builtinPop),
		NewBuiltin(config.ExtendFuncName, []string{"listA", "listB"}, builtinExtend),
		NewBuiltin(config.TypeOfFuncName, []string{"value"}, builtinTypeOf),
		NewBuiltin(config.IsNumberFuncName, []string{"value"}, kindPredicate(NumberKind)),
		NewBuiltin(config.IsStringFuncName, []string{"value"}, kindPredicate(StringKind)),
		NewBuiltin(config.IsListFuncName, []string{"value"}, kindPredicate(ListKind)),
		NewBuiltin(config.IsFunctionFuncName, []string{"value"}, kindPredicate(FunctionKind, BuiltinKind)),
		NewBuiltin(config.MatchesFuncName, []string{"text", "pattern"}, builtinMatches),
		NewBuiltin(config.ReplaceFuncName, []string{"text", "pattern", "replacement"}, builtinReplace),
		NewBuiltin(config.SplitFuncName, []string{"text", "pattern"}, builtinSplit),
	}
}

// RegisterBuiltins binds the standard builtins and the constants null,
// true, false and pi in ctx. All of them are constant bindings.
func RegisterBuiltins(ctx *Context) {
	for _, b := range Builtins() {
		ctx.Define(b.Name, b, false)
	}
	ctx.Define(config.NullConstName, NewNull(), false)
	ctx.Define(config.TrueConstName, NewBool(true), false)
	ctx.Define(config.FalseConstName, NewBool(false), false)
	ctx.Define(config.PiConstName, NewFloat(math.Pi), false)
}

func builtinPrint(in *Invocation) Result {
	fmt.Fprintln(in.Evaluator.Out, in.Arg(0).Inspect())
	return in.Ok(NewNull())
}

func builtinStr(in *Invocation) Result {
	return in.Ok(NewString(in.Arg(0).Inspect()))
}

func builtinLen(in *Invocation) Result {
	switch v := in.Arg(0).(type) {
	case *List:
		return in.Ok(NewInt(int64(v.Len())))
	case *String:
		return in.Ok(NewInt(int64(v.Len())))
	}
	return in.Fail(ErrType, "len expects a %s or %s, got %s", ListKind, StringKind, in.Arg(0).Kind())
}

func builtinAppend(in *Invocation) Result {
	list, res := listArg(in, 0)
	if res.ShouldReturn() {
		return res
	}
	list.Append(in.Arg(1))
	return in.Ok(NewNull())
}

func builtinPop(in *Invocation) Result {
	list, res := listArg(in, 0)
	if res.ShouldReturn() {
		return res
	}
	index, ok := listIndex(in.Arg(1))
	if !ok {
		return in.Fail(ErrType, "pop index must be an integer %s, got %s", NumberKind, in.Arg(1).Inspect())
	}
	v, err := list.RemoveAt(index)
	if err != nil {
		return in.Fail(ErrIndexOutOfRange, "%s", err)
	}
	return in.Ok(v.Copy())
}

func builtinExtend(in *Invocation) Result {
	a, res := listArg(in, 0)
	if res.ShouldReturn() {
		return res
	}
	b, res := listArg(in, 1)
	if res.ShouldReturn() {
		return res
	}
	a.Extend(b)
	return in.Ok(NewNull())
}

func builtinTypeOf(in *Invocation) Result {
	return in.Ok(NewString(in.Arg(0).Kind().String()))
}

func kindPredicate(kinds ...Kind) NativeFunc {
	return func(in *Invocation) Result {
		k := in.Arg(0).Kind()
		for _, want := range kinds {
			if k == want {
				return in.Ok(NewBool(true))
			}
		}
		return in.Ok(NewBool(false))
	}
}

func listArg(in *Invocation, i int) (*List, Result) {
	list, ok := in.Arg(i).(*List)
	if !ok {
		return nil, in.Fail(ErrType, "argument %d must be a %s, got %s", i+1, ListKind, in.Arg(i).Kind())
	}
	return list, Result{}
}

func stringArg(in *Invocation, i int) (string, Result) {
	s, ok := in.Arg(i).(*String)
	if !ok {
		return "", in.Fail(ErrType, "argument %d must be a %s, got %s", i+1, StringKind, in.Arg(i).Kind())
	}
	return s.Value, Result{}
}
