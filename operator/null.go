package operator

import "github.com/gordthompson/jackcess-go/value"

// triBool reduces v to a three-state logical value: nil means unknown
// (NULL), otherwise the pointee is the VBA truth value.
func triBool(v value.Value) (*bool, error) {
	if v.IsNull() {
		return nil, nil
	}
	b, err := v.AsBoolean()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// evalAnd implements VBA's three-valued AND: a literal FALSE operand short
// circuits to FALSE even when the other side is NULL.
func evalAnd(l, r value.Value) (value.Value, error) {
	lb, err := triBool(l)
	if err != nil {
		return value.Value{}, err
	}
	rb, err := triBool(r)
	if err != nil {
		return value.Value{}, err
	}
	if lb != nil && !*lb {
		return value.False(), nil
	}
	if rb != nil && !*rb {
		return value.False(), nil
	}
	if lb == nil || rb == nil {
		return value.Null(), nil
	}
	return value.FromBool(*lb && *rb), nil
}

// evalOr implements VBA's three-valued OR: a literal TRUE operand short
// circuits to TRUE even when the other side is NULL.
func evalOr(l, r value.Value) (value.Value, error) {
	lb, err := triBool(l)
	if err != nil {
		return value.Value{}, err
	}
	rb, err := triBool(r)
	if err != nil {
		return value.Value{}, err
	}
	if lb != nil && *lb {
		return value.True(), nil
	}
	if rb != nil && *rb {
		return value.True(), nil
	}
	if lb == nil || rb == nil {
		return value.Null(), nil
	}
	return value.FromBool(*lb || *rb), nil
}

// evalImp implements VBA's three-valued IMP (logical implication):
// FALSE implies anything, and anything implies TRUE.
func evalImp(l, r value.Value) (value.Value, error) {
	lb, err := triBool(l)
	if err != nil {
		return value.Value{}, err
	}
	rb, err := triBool(r)
	if err != nil {
		return value.Value{}, err
	}
	if lb != nil && !*lb {
		return value.True(), nil
	}
	if rb != nil && *rb {
		return value.True(), nil
	}
	if lb != nil && *lb {
		if rb != nil && !*rb {
			return value.False(), nil
		}
		return value.Null(), nil
	}
	return value.Null(), nil
}

// evalConcat implements &: a NULL operand coerces to empty string rather
// than propagating, so & never returns NULL.
func evalConcat(l, r value.Value) (value.Value, error) {
	return value.String(concatPart(l) + concatPart(r)), nil
}

func concatPart(v value.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.AsString()
}
