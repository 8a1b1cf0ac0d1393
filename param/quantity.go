package param

import "strconv"

// Unit tags a numeric value with its physical unit. Units are opaque here:
// the only operation is equality.
type Unit string

// A few units that the bundled designers use.
const (
	Dimensionless Unit = ""
	Millimetre    Unit = "mm"
	Metre         Unit = "m"
	Degree        Unit = "deg"
	Radian        Unit = "rad"
)

// A Quantity is a unit-tagged number.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Q creates a quantity.
func Q(v float64, u Unit) Quantity {
	return Quantity{Value: v, Unit: u}
}

func (q Quantity) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == Dimensionless {
		return s
	}

	return s + " " + string(q.Unit)
}
