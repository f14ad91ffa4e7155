package diag

// Severity defines the importance of a diagnostic. The numeric values
// follow the LSP convention (error=1, warning=2) so they serialize
// directly onto the wire.
type Severity int

const (
	SevError   Severity = 1
	SevWarning Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "unknown"
}
