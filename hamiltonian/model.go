package hamiltonian

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Model is a two-level Hamiltonian parameterised by one Parameters value.
type Model interface {
	Name() string
	Parameters() Parameters
	// Components evaluates the Hamiltonian vector at a possibly complex time.
	Components(t complex128) Components
	// Crossings returns the real times of the level crossings in
	// increasing order.
	Crossings() []float64
}

// Kind selects one of the model variants.
type Kind int

const (
	KindLinear = Kind(iota)
	KindTwisted
	KindKondo
	KindDoublePassage
	NumberOfKinds = int(iota)
)

var kindNames = [...]string{"linear", "twisted", "kondo", "double-passage"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumberOfKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a name such as "twisted" to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: model %q", ErrUnknownKind, name)
}

// New builds the model of the given kind.
func New(kind Kind, p Parameters) (Model, error) {
	switch kind {
	case KindLinear:
		return NewLinear(p)
	case KindTwisted:
		return NewTwisted(p)
	case KindKondo:
		return NewKondo(p)
	case KindDoublePassage:
		return NewDoublePassage(p)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// Evaluate returns one component of m at time t. An unknown selector is
// ErrUnknownKind.
func Evaluate(m Model, t complex128, c Component) (complex128, error) {
	v, ok := m.Components(t).At(c)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownKind, c)
	}
	return v, nil
}

// Linear is the single passage twisted Landau-Zener model in its small
// angle form:
//
//	x = v·q, y = ½·k·v²·q², z = m
type Linear struct {
	p Parameters
}

func NewLinear(p Parameters) (*Linear, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Linear{p: p}, nil
}

func (l *Linear) Name() string           { return KindLinear.String() }
func (l *Linear) Parameters() Parameters { return l.p }
func (l *Linear) Crossings() []float64   { return []float64{0} }

func (l *Linear) Components(t complex128) Components {
	v, m, k := complex(l.p.Slope, 0), complex(l.p.Gap, 0), complex(l.p.Twist, 0)
	q := l.p.Sweep(t)
	return Components{
		X:    v * q,
		Y:    0.5 * k * v * v * q * q,
		Z:    m,
		XDot: v,
		YDot: k * v * v * q,
		ZDot: 0,
	}
}

// Twisted is the periodic twisted model of Takayoshi, Wu and Oka, which
// crosses twice per period:
//
//	x = v·cos q, y = ¼·k·v²·cos q·sin 2q, z = m·sin q
type Twisted struct {
	p Parameters
	// sign of x; the Kondo variant flips it.
	sign complex128
}

func NewTwisted(p Parameters) (*Twisted, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Twisted{p: p, sign: 1}, nil
}

// NewKondo returns the twisted model with x = -v·cos q, the convention
// of the slope sweep.
func NewKondo(p Parameters) (*Twisted, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Twisted{p: p, sign: -1}, nil
}

func (w *Twisted) Name() string {
	if w.sign == -1 {
		return KindKondo.String()
	}
	return KindTwisted.String()
}

func (w *Twisted) Parameters() Parameters { return w.p }
func (w *Twisted) Crossings() []float64   { return periodicCrossings(w.p.SweepRate) }

func (w *Twisted) Components(t complex128) Components {
	v, m, k := complex(w.p.Slope, 0), complex(w.p.Gap, 0), complex(w.p.Twist, 0)
	q := w.p.Sweep(t)
	cq, sq := cmplx.Cos(q), cmplx.Sin(q)
	c2q, s2q := cmplx.Cos(2*q), cmplx.Sin(2*q)
	a := 0.25 * k * v * v
	return Components{
		X:    w.sign * v * cq,
		Y:    a * cq * s2q,
		Z:    m * sq,
		XDot: -w.sign * v * sq,
		YDot: a * (-sq*s2q + 2*cq*c2q),
		ZDot: m * cq,
	}
}

// DoublePassage is the model used for the two-crossing interference
// experiment:
//
//	x = v·cos q, y = ⅛·k·v²·sin² 2q, z = m·sin q
//
// With k = 4·Δy/ε₀² the coupling reduces to ½·Δy·sin² 2q.
type DoublePassage struct {
	p Parameters
}

func NewDoublePassage(p Parameters) (*DoublePassage, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &DoublePassage{p: p}, nil
}

func (d *DoublePassage) Name() string           { return KindDoublePassage.String() }
func (d *DoublePassage) Parameters() Parameters { return d.p }
func (d *DoublePassage) Crossings() []float64   { return periodicCrossings(d.p.SweepRate) }

func (d *DoublePassage) Components(t complex128) Components {
	v, m, k := complex(d.p.Slope, 0), complex(d.p.Gap, 0), complex(d.p.Twist, 0)
	q := d.p.Sweep(t)
	cq, sq := cmplx.Cos(q), cmplx.Sin(q)
	c2q, s2q := cmplx.Cos(2*q), cmplx.Sin(2*q)
	a := 0.125 * k * v * v
	return Components{
		X:    v * cq,
		Y:    a * s2q * s2q,
		Z:    m * sq,
		XDot: -v * sq,
		YDot: 4 * a * s2q * c2q,
		ZDot: m * cq,
	}
}

// periodicCrossings returns ∓π/(2|F|), where cos q vanishes.
func periodicCrossings(f float64) []float64 {
	quarter := math.Pi / (2 * math.Abs(f))
	return []float64{-quarter, quarter}
}
