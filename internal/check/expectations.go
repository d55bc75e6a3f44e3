package check

type optional[T comparable] struct {
	value T
	set   bool
}

// Expectations holds the operator-supplied value for each checkable field.
// A field that was never set is not checked. Build one with NewExpectations.
type Expectations struct {
	serial             optional[string]
	subject            optional[string]
	issuer             optional[string]
	signatureAlgorithm optional[string]
	publicKeyAlgorithm optional[string]
	publicKeySize      optional[int]
}

func (e Expectations) Serial() (string, bool)  { return e.serial.value, e.serial.set }
func (e Expectations) Subject() (string, bool) { return e.subject.value, e.subject.set }
func (e Expectations) Issuer() (string, bool)  { return e.issuer.value, e.issuer.set }
func (e Expectations) SignatureAlgorithm() (string, bool) {
	return e.signatureAlgorithm.value, e.signatureAlgorithm.set
}
func (e Expectations) PublicKeyAlgorithm() (string, bool) {
	return e.publicKeyAlgorithm.value, e.publicKeyAlgorithm.set
}
func (e Expectations) PublicKeySize() (int, bool) {
	return e.publicKeySize.value, e.publicKeySize.set
}

// IsEmpty reports whether no field is checked.
func (e Expectations) IsEmpty() bool {
	return !e.serial.set && !e.subject.set && !e.issuer.set &&
		!e.signatureAlgorithm.set && !e.publicKeyAlgorithm.set && !e.publicKeySize.set
}

// Builder assembles an Expectations value. Each setter takes a pointer so
// callers can pass "maybe" values straight through; nil leaves the field
// unchecked.
type Builder struct {
	e Expectations
}

func NewExpectations() *Builder { return &Builder{} }

func (b *Builder) Serial(v *string) *Builder {
	b.e.serial = opt(v)
	return b
}

func (b *Builder) Subject(v *string) *Builder {
	b.e.subject = opt(v)
	return b
}

func (b *Builder) Issuer(v *string) *Builder {
	b.e.issuer = opt(v)
	return b
}

func (b *Builder) SignatureAlgorithm(v *string) *Builder {
	b.e.signatureAlgorithm = opt(v)
	return b
}

func (b *Builder) PublicKeyAlgorithm(v *string) *Builder {
	b.e.publicKeyAlgorithm = opt(v)
	return b
}

func (b *Builder) PublicKeySize(v *int) *Builder {
	b.e.publicKeySize = opt(v)
	return b
}

// Build returns the expectations. Later builder calls do not affect values
// already returned.
func (b *Builder) Build() Expectations {
	return b.e
}

func opt[T comparable](v *T) optional[T] {
	if v == nil {
		return optional[T]{}
	}
	return optional[T]{value: *v, set: true}
}

// Ptr returns a pointer to v, for literal expectation values.
func Ptr[T any](v T) *T { return &v }
