package physics

import "fmt"

func (m MergeMode) String() string {
	switch m {
	case MergeApprox:
		return "approx"
	case MergeMomentum:
		return "momentum"
	}
	return fmt.Sprintf("MergeMode(%d)", int(m))
}

func (p MergePolicy) String() string {
	switch p {
	case SkipIntegration:
		return "skip"
	case ContinueIntegration:
		return "continue"
	}
	return fmt.Sprintf("MergePolicy(%d)", int(p))
}

// ParseMergeMode accepts "approx" or "momentum".
func ParseMergeMode(s string) (MergeMode, error) {
	switch s {
	case "approx":
		return MergeApprox, nil
	case "momentum":
		return MergeMomentum, nil
	}
	return 0, fmt.Errorf("physics: unknown merge mode %q (want approx or momentum)", s)
}

// ParseMergePolicy accepts "skip" or "continue".
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch s {
	case "skip":
		return SkipIntegration, nil
	case "continue":
		return ContinueIntegration, nil
	}
	return 0, fmt.Errorf("physics: unknown merge policy %q (want skip or continue)", s)
}
