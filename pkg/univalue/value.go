// Package univalue is a small JSON value tree with a single-pass parser and a
// serializer.
//
// A Value is one of six kinds: null, bool, number, string, array and object.
// Numbers keep the exact digits they were read or set with; they are only
// interpreted when a typed getter such as GetInt64 is called. Objects keep
// their members in insertion order and allow duplicate keys; lookups return
// the first match.
//
// The zero Value is a valid null.
//
//	var v univalue.Value
//	if err := v.Read([]byte(`{"a":1,"b":[true,false,null]}`)); err != nil {
//		return err
//	}
//	b, _ := v.Find("b")
//	fmt.Println(b.Size(), v.Write(2, 0))
//
// A Value is not safe for concurrent mutation. Concurrent reads of a tree
// that is not being modified are safe.
package univalue

import (
	"math"
	"strconv"
)

// Value is a node of a JSON value tree.
type Value struct {
	kind Kind
	// scalar holds the digits of a number, the decoded text of a string and
	// "1" or "0" for a bool.
	scalar string
	// keys is only used by objects; keys[i] names children[i].
	keys     []string
	children []*Value
}

// NewNull returns a null value.
func NewNull() *Value {
	return &Value{}
}

// NewBool returns a bool value.
func NewBool(b bool) *Value {
	v := &Value{}
	v.SetBool(b)
	return v
}

// NewInt returns a number value holding n.
func NewInt(n int64) *Value {
	v := &Value{}
	v.SetInt(n)
	return v
}

// NewUint returns a number value holding n.
func NewUint(n uint64) *Value {
	v := &Value{}
	v.SetUint(n)
	return v
}

// NewFloat returns a number value holding f with 16 significant digits. NaN
// and infinities have no JSON representation and yield null.
func NewFloat(f float64) *Value {
	v := &Value{}
	v.SetFloat(f)
	return v
}

// NewNumStr returns a number value with the given digits, or false if s is
// not a JSON number.
func NewNumStr(s string) (*Value, bool) {
	v := &Value{}
	if !v.SetNumStr(s) {
		return nil, false
	}
	return v, true
}

// NewStr returns a string value.
func NewStr(s string) *Value {
	v := &Value{}
	v.SetStr(s)
	return v
}

// NewArray returns an array holding copies of vals.
func NewArray(vals ...*Value) *Value {
	v := &Value{kind: Array}
	v.PushValues(vals...)
	return v
}

// NewObject returns an empty object.
func NewObject() *Value {
	return &Value{kind: Object}
}

// Clear resets v to null, releasing any children.
func (v *Value) Clear() {
	v.kind = Null
	v.scalar = ""
	v.keys = nil
	v.children = nil
}

// SetNull resets v to null.
func (v *Value) SetNull() bool {
	v.Clear()
	return true
}

// SetBool replaces v with a bool.
func (v *Value) SetBool(b bool) bool {
	v.Clear()
	v.kind = Bool
	if b {
		v.scalar = "1"
	} else {
		v.scalar = "0"
	}
	return true
}

// SetNumStr replaces v with a number whose digits are s. It returns false and
// leaves v untouched when s is not a JSON number.
func (v *Value) SetNumStr(s string) bool {
	if !isNumber(s) {
		return false
	}
	v.Clear()
	v.kind = Number
	v.scalar = s
	return true
}

// SetInt replaces v with a number.
func (v *Value) SetInt(n int64) bool {
	return v.SetNumStr(strconv.FormatInt(n, 10))
}

// SetUint replaces v with a number.
func (v *Value) SetUint(n uint64) bool {
	return v.SetNumStr(strconv.FormatUint(n, 10))
}

// SetFloat replaces v with a number formatted with 16 significant digits.
// NaN and infinities are rejected.
func (v *Value) SetFloat(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return v.SetNumStr(strconv.FormatFloat(f, 'g', 16, 64))
}

// SetStr replaces v with a string.
func (v *Value) SetStr(s string) bool {
	v.Clear()
	v.kind = String
	v.scalar = s
	return true
}

// SetArray replaces v with an empty array.
func (v *Value) SetArray() bool {
	v.Clear()
	v.kind = Array
	return true
}

// SetObject replaces v with an empty object.
func (v *Value) SetObject() bool {
	v.Clear()
	v.kind = Object
	return true
}

// Push appends a copy of val to an array. It returns false if v is not an
// array.
func (v *Value) Push(val *Value) bool {
	if v.kind != Array {
		return false
	}
	v.children = append(v.children, val.Clone())
	return true
}

// PushValues appends copies of vals to an array.
func (v *Value) PushValues(vals ...*Value) bool {
	if v.kind != Array {
		return false
	}
	for _, val := range vals {
		v.children = append(v.children, val.Clone())
	}
	return true
}

// PushKV appends the pair key: copy of val to an object. Existing members
// with the same key are kept; Find will keep returning the first one.
func (v *Value) PushKV(key string, val *Value) bool {
	if v.kind != Object {
		return false
	}
	v.keys = append(v.keys, key)
	v.children = append(v.children, val.Clone())
	return true
}

// PushKVs appends copies of every pair of obj to v. Both must be objects.
func (v *Value) PushKVs(obj *Value) bool {
	if v.kind != Object || obj.kind != Object {
		return false
	}
	// Snapshot first so that v.PushKVs(v) terminates.
	keys := append([]string(nil), obj.keys...)
	children := append([]*Value(nil), obj.children...)
	for i := range keys {
		v.keys = append(v.keys, keys[i])
		v.children = append(v.children, children[i].Clone())
	}
	return true
}

// Erase removes the child at index from an array or object. It returns false
// if v is not a container or index is out of range.
func (v *Value) Erase(index int) bool {
	if !v.kind.IsContainer() || index < 0 || index >= len(v.children) {
		return false
	}
	v.remove(index)
	return true
}

// EraseKey removes the first member named key from an object.
func (v *Value) EraseKey(key string) bool {
	if v.kind != Object {
		return false
	}
	index, ok := v.findKey(key)
	if !ok {
		return false
	}
	v.remove(index)
	return true
}

// remove splices index out of children and, for objects, keys.
func (v *Value) remove(index int) {
	children := make([]*Value, 0, len(v.children)-1)
	children = append(children, v.children[:index]...)
	v.children = append(children, v.children[index+1:]...)
	if v.kind == Object {
		keys := make([]string, 0, len(v.keys)-1)
		keys = append(keys, v.keys[:index]...)
		v.keys = append(keys, v.keys[index+1:]...)
	}
}

// Clone returns a deep copy of v. A nil receiver clones to null.
func (v *Value) Clone() *Value {
	if v == nil {
		return &Value{}
	}
	c := &Value{kind: v.kind, scalar: v.scalar}
	if v.keys != nil {
		c.keys = append([]string(nil), v.keys...)
	}
	if v.children != nil {
		c.children = make([]*Value, len(v.children))
		for i, child := range v.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}

// Equal reports whether v and other have the same kind, scalar, keys and
// children, in order.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind || len(v.children) != len(other.children) {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.IsTrue() == other.IsTrue()
	case Number, String:
		return v.scalar == other.scalar
	case Object:
		for i := range v.keys {
			if v.keys[i] != other.keys[i] {
				return false
			}
		}
	}
	for i := range v.children {
		if !v.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
