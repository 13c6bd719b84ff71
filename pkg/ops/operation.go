package ops

// Target is the value every puzzle must reach.
const Target = 9

// ID identifies an operation. The string value is the persisted form.
type ID string

// Operation identifiers.
const (
	DigitSum        ID = "digitSum"
	DigitSquareSum  ID = "digitSquareSum"
	DigitDifference ID = "digitDifference"
	Mod10           ID = "mod10"
	Mod9            ID = "mod9"
	DropLastDigit   ID = "dropLastDigit"

	Add1        ID = "add1"
	Subtract1   ID = "subtract1"
	Add9Once    ID = "add9Once"
	MultiplyBy2 ID = "multiplyBy2"

	DivideBy2 ID = "divideBy2"
	DivideBy3 ID = "divideBy3"

	ReverseDigits ID = "reverseDigits"
	RotateDigits  ID = "rotateDigits"
)

// Kind is the classification tag used when selecting a puzzle's operations.
type Kind string

// Operation kinds.
const (
	KindReducer     Kind = "reducer"     // collapses magnitude
	KindAmplifier   Kind = "amplifier"   // grows magnitude
	KindTransformer Kind = "transformer" // restructures digits
	KindPrecision   Kind = "precision"   // fine-grained control
)

// Transform maps the current number to the next one. ok is false when the
// move is illegal for n.
type Transform func(n int) (next int, ok bool)

// Operation pairs an identifier with its label, kind and transform.
type Operation struct {
	ID    ID
	Label string
	Kind  Kind
	Apply Transform
}

// String returns the operation's identifier.
func (id ID) String() string { return string(id) }

// Valid reports whether id names a registered operation.
func (id ID) Valid() bool {
	_, ok := registry[id]
	return ok
}

// Kind returns the classification of id, or the empty Kind when id is not
// registered.
func (id ID) Kind() Kind {
	return registry[id].Kind
}

// Label returns the display label of id, or its raw value when id is not
// registered.
func (id ID) Label() string {
	op, ok := registry[id]
	if !ok {
		return string(id)
	}
	return op.Label
}
