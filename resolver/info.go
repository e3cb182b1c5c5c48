package resolver

type functionKind uint8

const (
	kindNoFunction functionKind = iota
	kindFunction
	kindMethod
)

func (f functionKind) String() string {
	switch f {
	case kindNoFunction:
		return "<script>"
	case kindFunction:
		return "function"
	case kindMethod:
		return "method"
	default:
		panic("Unknown functionKind.")
	}
}
