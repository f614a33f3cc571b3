package vela

import (
	"fmt"
	"math"
	"reflect"

	"github.com/funvibe/vela/internal/evaluator"
)

var (
	valueType = reflect.TypeOf((*evaluator.Value)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and script values.
//
//	Go                        script
//	nil                       null
//	int*, uint*               Number (integer)
//	float32, float64          Number (float)
//	bool                      Number (1 or 0)
//	string                    String
//	slice, array              List
//	func                      built-in function
//	evaluator.Value           passed through
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a script value.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Value, error) {
	if val == nil {
		return evaluator.NewNull(), nil
	}

	// Check if already a Value
	if v, ok := val.(evaluator.Value); ok {
		return v, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return evaluator.NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows a script integer", u)
		}
		return evaluator.NewInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return evaluator.NewFloat(v.Float()), nil
	case reflect.Bool:
		return evaluator.NewBool(v.Bool()), nil
	case reflect.String:
		return evaluator.NewString(v.String()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return evaluator.NewList(nil), nil
		}
		return m.sliceToList(v)
	case reflect.Func:
		return m.funcToBuiltin("<host>", v)
	case reflect.Ptr:
		if v.IsNil() {
			return evaluator.NewNull(), nil
		}
		return m.ToValue(v.Elem().Interface())
	default:
		return nil, fmt.Errorf("unsupported Go type %s", v.Type())
	}
}

// FromValue converts a script value to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(val evaluator.Value, targetType reflect.Type) (interface{}, error) {
	if val == nil {
		return nil, nil
	}

	// If target type is evaluator.Value, return as is
	if targetType == valueType {
		return val, nil
	}

	switch v := val.(type) {
	case *evaluator.Number:
		return numberToGo(v, targetType)
	case *evaluator.String:
		return v.Value, nil
	case *evaluator.List:
		return m.listToSlice(v, targetType)
	case *evaluator.Null:
		return nil, nil
	case *evaluator.StructInstance:
		return m.instanceToMap(v)
	default:
		// Functions and struct definitions have no Go counterpart.
		return val, nil
	}
}

func numberToGo(n *evaluator.Number, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		if n.IsFloat {
			return n.Float, nil
		}
		return int(n.Int), nil // Default to int
	}

	switch targetType.Kind() {
	case reflect.Float32, reflect.Float64:
		f := float64(n.Int)
		if n.IsFloat {
			f = n.Float
		}
		return reflect.ValueOf(f).Convert(targetType).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i := n.Int
		if n.IsFloat {
			if n.Float != math.Trunc(n.Float) {
				return nil, fmt.Errorf("%s is not an integer", n.Inspect())
			}
			i = int64(n.Float)
		}
		return reflect.ValueOf(i).Convert(targetType).Interface(), nil
	case reflect.Bool:
		return n.Truthy(), nil
	}
	return nil, fmt.Errorf("cannot convert Number to %s", targetType)
}

func (m *Marshaller) sliceToList(v reflect.Value) (*evaluator.List, error) {
	elements := make([]evaluator.Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements[i] = val
	}
	return evaluator.NewList(elements), nil
}

func (m *Marshaller) listToSlice(l *evaluator.List, targetType reflect.Type) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, l.Len())
	for _, el := range l.Snapshot() {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}
		rv, err := convertTo(val, elemType)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

// instanceToMap returns the members of a struct instance by name.
func (m *Marshaller) instanceToMap(s *evaluator.StructInstance) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	for _, name := range s.Env.Scope.Names() {
		member, _ := s.Member(name)
		val, err := m.FromValue(member, nil)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", name, err)
		}
		result[name] = val
	}
	return result, nil
}

// convertTo turns a converted Go value into a reflect.Value of type t.
func convertTo(val interface{}, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		// Handle nil for pointers/interfaces
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Kind() == reflect.String && t.Kind() == reflect.String:
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", rv.Type(), t)
}

// funcToBuiltin wraps a Go function. A trailing error result becomes a
// runtime error; the other results become the return value (a List when
// there are several).
func (m *Marshaller) funcToBuiltin(name string, fn reflect.Value) (*evaluator.Builtin, error) {
	fnType := fn.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("%s: variadic functions are not supported", name)
	}

	params := make([]string, fnType.NumIn())
	for i := range params {
		params[i] = fmt.Sprintf("arg%d", i)
	}

	return evaluator.NewBuiltin(name, params, func(in *evaluator.Invocation) evaluator.Result {
		goArgs := make([]reflect.Value, len(in.Args))
		for i, arg := range in.Args {
			targetType := fnType.In(i)
			val, err := m.FromValue(arg, targetType)
			if err != nil {
				return in.Fail(evaluator.ErrType, "argument %d of '%s': %v", i, name, err)
			}
			if goArgs[i], err = convertTo(val, targetType); err != nil {
				return in.Fail(evaluator.ErrType, "argument %d of '%s': %v", i, name, err)
			}
		}

		results := fn.Call(goArgs)

		if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
			if err, _ := results[n-1].Interface().(error); err != nil {
				return in.Fail(ErrHostCall, "%s: %v", name, err)
			}
			results = results[:n-1]
		}

		// Convert results back to script values
		if len(results) == 0 {
			return in.Ok(evaluator.NewNull())
		}
		values := make([]evaluator.Value, len(results))
		for i, res := range results {
			val, err := m.ToValue(res.Interface())
			if err != nil {
				return in.Fail(ErrHostCall, "%s: result %d: %v", name, i, err)
			}
			values[i] = val
		}
		if len(values) == 1 {
			return in.Ok(values[0])
		}
		return in.Ok(evaluator.NewList(values))
	}), nil
}
