package ops

import (
	"strconv"
	"strings"
)

// order is the canonical enumeration order of the registry.
var order = []ID{
	DigitSum,
	DigitSquareSum,
	DigitDifference,
	Mod10,
	Mod9,
	DropLastDigit,
	Add1,
	Subtract1,
	Add9Once,
	MultiplyBy2,
	DivideBy2,
	DivideBy3,
	ReverseDigits,
	RotateDigits,
}

// registry is built once at package initialization and never mutated.
var registry = map[ID]Operation{
	DigitSum:        {DigitSum, "Digit Sum", KindReducer, digitSum},
	DigitSquareSum:  {DigitSquareSum, "Digit² Sum", KindReducer, digitSquareSum},
	DigitDifference: {DigitDifference, "Digit Diff", KindReducer, digitDifference},
	Mod10:           {Mod10, "Mod 10", KindReducer, mod10},
	Mod9:            {Mod9, "Mod 9", KindReducer, mod9},
	DropLastDigit:   {DropLastDigit, "Drop Digit", KindReducer, dropLastDigit},
	Add1:            {Add1, "+1", KindAmplifier, func(n int) (int, bool) { return n + 1, true }},
	Subtract1:       {Subtract1, "−1", KindPrecision, func(n int) (int, bool) { return n - 1, true }},
	Add9Once:        {Add9Once, "+9", KindAmplifier, func(n int) (int, bool) { return n + 9, true }},
	MultiplyBy2:     {MultiplyBy2, "×2", KindAmplifier, func(n int) (int, bool) { return n * 2, true }},
	DivideBy2:       {DivideBy2, "÷2", KindReducer, divideBy(2)},
	DivideBy3:       {DivideBy3, "÷3", KindReducer, divideBy(3)},
	ReverseDigits:   {ReverseDigits, "Reverse", KindTransformer, reverseDigits},
	RotateDigits:    {RotateDigits, "Rotate Digits", KindTransformer, rotateDigits},
}

// Lookup returns the operation registered under id.
func Lookup(id ID) (Operation, bool) {
	op, ok := registry[id]
	return op, ok
}

// Apply runs the transform of id on n. Unknown identifiers are illegal.
func Apply(id ID, n int) (int, bool) {
	op, ok := registry[id]
	if !ok {
		return n, false
	}
	return op.Apply(n)
}

// All returns every registered operation in canonical order.
func All() []Operation {
	out := make([]Operation, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}

// OfKind returns the identifiers classified as k, in canonical order.
func OfKind(k Kind) []ID {
	var out []ID
	for _, id := range order {
		if registry[id].Kind == k {
			out = append(out, id)
		}
	}
	return out
}

// Decode converts persisted raw strings back into identifiers. Values that no
// longer name a registered operation are dropped.
func Decode(raw []string) []ID {
	out := make([]ID, 0, len(raw))
	for _, s := range raw {
		if id := ID(s); id.Valid() {
			out = append(out, id)
		}
	}
	return out
}

// Encode converts identifiers to their persisted raw strings.
func Encode(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// digits returns the decimal digits of |n|, most significant first.
func digits(n int) string {
	return strings.TrimPrefix(strconv.Itoa(n), "-")
}

func digitSum(n int) (int, bool) {
	sum := 0
	for _, c := range digits(n) {
		sum += int(c - '0')
	}
	return sum, true
}

func digitSquareSum(n int) (int, bool) {
	sum := 0
	for _, c := range digits(n) {
		d := int(c - '0')
		sum += d * d
	}
	return sum, true
}

func digitDifference(n int) (int, bool) {
	ds := digits(n)
	if ds == "" {
		return n, false
	}
	acc := int(ds[0] - '0')
	for _, c := range ds[1:] {
		acc = absInt(acc - int(c-'0'))
	}
	return acc, true
}

func mod10(n int) (int, bool) {
	ds := digits(n)
	return int(ds[len(ds)-1] - '0'), true
}

// mod9 maps a zero remainder to 9. The digit sum is congruent to |n| mod 9.
func mod9(n int) (int, bool) {
	r, _ := digitSum(n)
	r %= 9
	if r == 0 {
		return 9, true
	}
	return r, true
}

func dropLastDigit(n int) (int, bool) {
	ds := digits(n)
	if len(ds) < 2 {
		return n, false
	}
	return parseDigits(ds[:len(ds)-1])
}

func divideBy(d int) Transform {
	return func(n int) (int, bool) {
		if n%d != 0 {
			return n, false
		}
		return n / d, true
	}
}

func reverseDigits(n int) (int, bool) {
	ds := []byte(digits(n))
	for i, j := 0, len(ds)-1; i < j; i, j = i+1, j-1 {
		ds[i], ds[j] = ds[j], ds[i]
	}
	return parseDigits(string(ds))
}

func rotateDigits(n int) (int, bool) {
	ds := digits(n)
	if len(ds) < 2 {
		return n, false
	}
	return parseDigits(ds[1:] + ds[:1])
}

// parseDigits re-parses a digit string. Values that overflow int are illegal.
func parseDigits(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
