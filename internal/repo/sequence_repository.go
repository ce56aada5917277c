package repo

// SequenceRepository hands out monotonically increasing integers per named
// sequence. Order numbering uses one sequence per role prefix ("CO", "DO");
// the implementation must be atomic so two orders can never draw the same
// number.
type SequenceRepository interface {
	Next(name string) (int, error)
}
