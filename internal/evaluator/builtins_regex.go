package evaluator

import (
	"github.com/coregx/coregex"
)

// regexp compiles pattern once per evaluator.
func (e *Evaluator) regexp(pattern string) (*coregex.Regexp, error) {
	if re, ok := e.regexps[pattern]; ok {
		return re, nil
	}
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if e.regexps == nil {
		e.regexps = make(map[string]*coregex.Regexp)
	}
	e.regexps[pattern] = re
	return re, nil
}

// regexArgs extracts the text and compiled pattern shared by the regex
// builtins.
func regexArgs(in *Invocation) (string, *coregex.Regexp, Result) {
	text, res := stringArg(in, 0)
	if res.ShouldReturn() {
		return "", nil, res
	}
	pattern, res := stringArg(in, 1)
	if res.ShouldReturn() {
		return "", nil, res
	}
	re, err := in.Evaluator.regexp(pattern)
	if err != nil {
		return "", nil, in.Fail(ErrType, "invalid pattern %q: %s", pattern, err)
	}
	return text, re, Result{}
}

func builtinMatches(in *Invocation) Result {
	text, re, res := regexArgs(in)
	if res.ShouldReturn() {
		return res
	}
	return in.Ok(NewBool(re.MatchString(text)))
}

func builtinReplace(in *Invocation) Result {
	text, re, res := regexArgs(in)
	if res.ShouldReturn() {
		return res
	}
	repl, res := stringArg(in, 2)
	if res.ShouldReturn() {
		return res
	}
	return in.Ok(NewString(re.ReplaceAllString(text, repl)))
}

func builtinSplit(in *Invocation) Result {
	text, re, res := regexArgs(in)
	if res.ShouldReturn() {
		return res
	}
	parts := re.Split(text, -1)
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = NewString(p)
	}
	return in.Ok(NewList(items))
}
