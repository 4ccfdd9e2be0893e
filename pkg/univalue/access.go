package univalue

import (
	"github.com/mcncl/univalue/pkg/numparse"
)

// Type returns the kind of v.
func (v *Value) Type() Kind { return v.kind }

// ValStr returns the raw scalar: number digits, string text, or "1"/"0" for
// bools. It is empty for null, arrays and objects.
func (v *Value) ValStr() string { return v.scalar }

// Kind predicates. IsTrue and IsFalse are false for anything but a bool.
func (v *Value) IsNull() bool   { return v.kind == Null }
func (v *Value) IsBool() bool   { return v.kind == Bool }
func (v *Value) IsTrue() bool   { return v.kind == Bool && v.scalar == "1" }
func (v *Value) IsFalse() bool  { return v.kind == Bool && v.scalar != "1" }
func (v *Value) IsNum() bool    { return v.kind == Number }
func (v *Value) IsStr() bool    { return v.kind == String }
func (v *Value) IsArray() bool  { return v.kind == Array }
func (v *Value) IsObject() bool { return v.kind == Object }

// Size returns the number of children of an array or object.
func (v *Value) Size() int { return len(v.children) }

// Empty reports whether v has no children.
func (v *Value) Empty() bool { return len(v.children) == 0 }

// Keys returns a copy of the member names of an object, in order.
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Values returns the children of an array or object, in order. The returned
// pointers are owned by v.
func (v *Value) Values() []*Value {
	return append([]*Value(nil), v.children...)
}

// At returns the child at index of an array or object.
func (v *Value) At(index int) (*Value, bool) {
	if !v.kind.IsContainer() || index < 0 || index >= len(v.children) {
		return nil, false
	}
	return v.children[index], true
}

// Find returns the value of the first member named key. The result is owned
// by v and stays valid until that member is erased or v is reset.
func (v *Value) Find(key string) (*Value, bool) {
	i, ok := v.findKey(key)
	if !ok {
		return nil, false
	}
	return v.children[i], true
}

// Exists reports whether an object has a member named key.
func (v *Value) Exists(key string) bool {
	_, ok := v.findKey(key)
	return ok
}

func (v *Value) findKey(key string) (int, bool) {
	if v.kind != Object {
		return 0, false
	}
	for i, k := range v.keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// CheckObject reports whether v is an object holding every key of
// memberTypes with the given kind.
func (v *Value) CheckObject(memberTypes map[string]Kind) bool {
	if v.kind != Object {
		return false
	}
	for key, kind := range memberTypes {
		child, ok := v.Find(key)
		if !ok || child.kind != kind {
			return false
		}
	}
	return true
}

// FindValue returns the member named key of obj, or a fresh null when obj is
// not an object or has no such member.
func FindValue(obj *Value, key string) *Value {
	if child, ok := obj.Find(key); ok {
		return child
	}
	return NewNull()
}

// GetBool returns the value of a bool.
func (v *Value) GetBool() (bool, error) {
	if v.kind != Bool {
		return false, typeError(Bool, v.kind)
	}
	return v.scalar == "1", nil
}

// GetStr returns the text of a string.
func (v *Value) GetStr() (string, error) {
	if v.kind != String {
		return "", typeError(String, v.kind)
	}
	return v.scalar, nil
}

// GetInt returns a number that fits in 32 bits.
func (v *Value) GetInt() (int, error) {
	if v.kind != Number {
		return 0, typeError(Number, v.kind)
	}
	n, err := numparse.ParseInt32(v.scalar)
	if err != nil {
		return 0, numberError(v.scalar, "int32", err)
	}
	return int(n), nil
}

// GetInt64 returns a number that fits in 64 bits.
func (v *Value) GetInt64() (int64, error) {
	if v.kind != Number {
		return 0, typeError(Number, v.kind)
	}
	n, err := numparse.ParseInt64(v.scalar)
	if err != nil {
		return 0, numberError(v.scalar, "int64", err)
	}
	return n, nil
}

// GetUint64 returns a non-negative number that fits in 64 bits.
func (v *Value) GetUint64() (uint64, error) {
	if v.kind != Number {
		return 0, typeError(Number, v.kind)
	}
	n, err := numparse.ParseUint64(v.scalar)
	if err != nil {
		return 0, numberError(v.scalar, "uint64", err)
	}
	return n, nil
}

// GetReal returns a number as a float64.
func (v *Value) GetReal() (float64, error) {
	if v.kind != Number {
		return 0, typeError(Number, v.kind)
	}
	f, err := numparse.ParseDouble(v.scalar)
	if err != nil {
		return 0, numberError(v.scalar, "double", err)
	}
	return f, nil
}

// GetObject returns v if it is an object.
func (v *Value) GetObject() (*Value, error) {
	if v.kind != Object {
		return nil, typeError(Object, v.kind)
	}
	return v, nil
}

// GetArray returns v if it is an array.
func (v *Value) GetArray() (*Value, error) {
	if v.kind != Array {
		return nil, typeError(Array, v.kind)
	}
	return v, nil
}
