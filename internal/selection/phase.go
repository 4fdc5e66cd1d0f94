package selection

import "fmt"

// Phase is the lifecycle stage of a Controller.
type Phase int

const (
	PhaseInit   Phase = iota // no trigger fired yet
	PhaseDelay               // trigger fired, result pending
	PhaseFinish              // result available

	phaseCount = iota
)

var phaseNames = [phaseCount]string{"init", "delay", "finish"}

func (p Phase) String() string {
	if p < 0 || int(p) >= phaseCount {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for i, n := range phaseNames {
		if n == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
