package evaluator

import (
	"strings"
	"testing"
)

const counterStruct = `- kind: struct
  name: Counter
  body:
    - {kind: assign, name: n, value: 0}
    - {kind: assign, name: label, value: "counter", const: true}
    - {kind: func, name: inc, body: [{kind: reassign, name: n, op: "+=", value: 1}, {kind: return, value: {kind: var, name: n}}]}`

func TestInstancesAreIndependent(t *testing.T) {
	r := mustRun(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 0}]}`,
		`- {kind: assign, name: a, value: {kind: var, name: S}}`,
		`- {kind: assign, name: b, value: {kind: var, name: S}}`,
		`- {kind: member_assign, struct: a, member: v, value: 9}`,
	))
	if got := member(t, r.ctx, "a", "v").Inspect(); got != "9" {
		t.Errorf("a.v = %s, want 9", got)
	}
	if got := member(t, r.ctx, "b", "v").Inspect(); got != "0" {
		t.Errorf("b.v = %s, want 0", got)
	}
	a := lookup(t, r.ctx, "a").(*StructInstance)
	b := lookup(t, r.ctx, "b").(*StructInstance)
	if a.ID == b.ID {
		t.Error("instances share an id")
	}
	if _, ok := lookup(t, r.ctx, "S").(*StructDefinition); !ok {
		t.Error("S should still be bound to its definition")
	}
}

func TestDeclarationReinstantiatesInstances(t *testing.T) {
	r := mustRun(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 0}]}`,
		`- {kind: assign, name: a, value: {kind: var, name: S}}`,
		`- {kind: member_assign, struct: a, member: v, value: 9}`,
		`- {kind: assign, name: c, value: {kind: var, name: a}}`,
	))
	if got := member(t, r.ctx, "c", "v").Inspect(); got != "0" {
		t.Errorf("c.v = %s, want a fresh instance", got)
	}
}

func TestReassignAliasesInstances(t *testing.T) {
	r := mustRun(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 0}]}`,
		`- {kind: assign, name: a, value: {kind: var, name: S}}`,
		`- {kind: assign, name: b, value: 0}`,
		`- {kind: reassign, name: b, value: {kind: var, name: a}}`,
		`- {kind: member_assign, struct: a, member: v, value: 5}`,
		`- {kind: assign, name: c, value: 0}`,
		`- {kind: reassign, name: c, value: {kind: var, name: S}}`,
	))
	if got := member(t, r.ctx, "b", "v").Inspect(); got != "5" {
		t.Errorf("b.v = %s, want 5 through the alias", got)
	}
	if got := member(t, r.ctx, "c", "v").Inspect(); got != "0" {
		t.Errorf("c.v = %s, want 0", got)
	}
}

func TestStructCallSeesMembers(t *testing.T) {
	r := mustRun(t, program(
		counterStruct,
		`- {kind: assign, name: c, value: {kind: var, name: Counter}}`,
		`- {kind: assign, name: d, value: {kind: var, name: Counter}}`,
		`- {kind: member_call, struct: c, member: inc}`,
		`- {kind: assign, name: r, value: {kind: member_call, struct: c, member: inc}}`,
		`- {kind: assign, name: l, value: {kind: member, struct: c, member: label}}`,
	))
	expectInspect(t, r.ctx, "r", "2")
	expectInspect(t, r.ctx, "l", "counter")
	if got := member(t, r.ctx, "d", "n").Inspect(); got != "0" {
		t.Errorf("d.n = %s, want 0", got)
	}
	if r.ctx.Scope.Present("n") {
		t.Error("member n leaked into the enclosing scope")
	}
}

func TestMemberLookupIsLocal(t *testing.T) {
	src := program(
		`- {kind: assign, name: outside, value: 1}`,
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 0}]}`,
		`- {kind: assign, name: s, value: {kind: var, name: S}}`,
	)
	runErr(t, src+program(`- {kind: member, struct: s, member: outside}`), ErrMemberNotFound)
	runErr(t, src+program(`- {kind: member_assign, struct: s, member: outside, value: 2}`), ErrMemberNotFound)
	runErr(t, src+program(`- {kind: member_call, struct: s, member: outside}`), ErrMemberNotFound)
}

func TestStructErrors(t *testing.T) {
	runErr(t, program(`- {kind: member, struct: nothing, member: v}`), ErrStructNotFound)

	err := runErr(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 0}]}`,
		`- {kind: member, struct: S, member: v}`,
	), ErrNotInstance)
	if !strings.Contains(err.Message, "definition") {
		t.Errorf("message = %q", err.Message)
	}

	runErr(t, program(
		`- {kind: assign, name: n, value: 1}`,
		`- {kind: member, struct: n, member: v}`,
	), ErrNotInstance)

	runErr(t, program(
		counterStruct,
		`- {kind: assign, name: c, value: {kind: var, name: Counter}}`,
		`- {kind: member_assign, struct: c, member: label, value: "x"}`,
	), ErrConstantReassign)

	runErr(t, program(
		counterStruct,
		`- {kind: assign, name: c, value: {kind: var, name: Counter}}`,
		`- {kind: member_call, struct: c, member: n}`,
	), ErrNotCallable)
}

func TestMemberBlockSignalIsAnError(t *testing.T) {
	runErr(t, program(
		`- {kind: struct, name: S, body: [{kind: break}]}`,
		`- {kind: assign, name: s, value: {kind: var, name: S}}`,
	), ErrUnconsumedSignal)
}

func TestDefinitionArgumentIsInstantiated(t *testing.T) {
	r := mustRun(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 3}]}`,
		`- {kind: func, name: get, params: [s], body: {kind: member, struct: s, member: v}, auto_return: true}`,
		`- {kind: assign, name: r, value: {kind: call, callee: {kind: var, name: get}, args: [{kind: var, name: S}]}}`,
	))
	expectInspect(t, r.ctx, "r", "3")
}

func TestMemberCompoundAssign(t *testing.T) {
	r := mustRun(t, program(
		`- {kind: struct, name: S, body: [{kind: assign, name: v, value: 10}]}`,
		`- {kind: assign, name: s, value: {kind: var, name: S}}`,
		`- {kind: member_assign, struct: s, member: v, op: "-=", value: 4}`,
	))
	if got := member(t, r.ctx, "s", "v").Inspect(); got != "6" {
		t.Errorf("s.v = %s, want 6", got)
	}
}
