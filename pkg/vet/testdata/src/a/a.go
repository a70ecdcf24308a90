package a

// Documented has a doc comment.
func Documented() {}

func Undocumented() {} // want `\[ERROR\] Missing doc comment: a\.Undocumented \(doc-presence\)`

// T is documented.
type T struct{}

func (T) Method() {} // want `Missing doc comment: a\.T\.Method`

// Deprecated: use Documented.
func Old() {}

func helper() {}
