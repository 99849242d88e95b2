package flexbox

// Unit discriminates how a Value is interpreted. The zero value is
// UnitUndefined so that an unset Value is distinguishable from Points(0);
// the solver treats "unset" and "zero" differently throughout.
type Unit int

const (
	UnitUndefined Unit = iota
	UnitPoint
	UnitPercent
	UnitAuto
)

// Value is a dimension in solver units, a percentage of the containing
// size, auto, or undefined.
type Value struct {
	Unit   Unit
	Amount float64
}

// Points returns an absolute value in solver units.
func Points(amount float64) Value {
	return Value{Unit: UnitPoint, Amount: amount}
}

// Percent returns a value resolved against a containing dimension.
func Percent(amount float64) Value {
	return Value{Unit: UnitPercent, Amount: amount}
}

// Auto is the CSS "auto" keyword.
var Auto = Value{Unit: UnitAuto}

// Undefined is the unset value.
var Undefined = Value{}

// IsDefined reports whether the value carries a usable dimension.
func (v Value) IsDefined() bool {
	return v.Unit == UnitPoint || v.Unit == UnitPercent
}

// Resolve converts the value to solver units against a reference dimension.
// Undefined and auto values resolve to (0, false).
func (v Value) Resolve(reference float64) (float64, bool) {
	switch v.Unit {
	case UnitPoint:
		return v.Amount, true
	case UnitPercent:
		return reference * v.Amount / 100, true
	default:
		return 0, false
	}
}
