package chip8

/// DefaultStackDepth is the number of nested calls allowed. CHIP-8 on
/// the COSMAC VIP had room for 12; later interpreters settled on 16.
///
const DefaultStackDepth = 16

/// Stack is a bounded LIFO of subroutine return addresses.
///
type Stack struct {
	addrs []uint16
}

/// NewStack returns an empty stack holding at most depth addresses.
///
func NewStack(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultStackDepth
	}

	return &Stack{addrs: make([]uint16, 0, depth)}
}

/// Push a return address. Fails when the stack is full.
///
func (s *Stack) Push(address uint16) error {
	if s.Full() {
		return ErrStackOverflow
	}

	s.addrs = append(s.addrs, address)
	return nil
}

/// Pop the most recently pushed address. Fails when the stack is empty.
///
func (s *Stack) Pop() (uint16, error) {
	n := len(s.addrs)
	if n == 0 {
		return 0, ErrStackUnderflow
	}

	address := s.addrs[n-1]
	s.addrs = s.addrs[:n-1]

	return address, nil
}

/// Len is the number of addresses on the stack.
///
func (s *Stack) Len() int {
	return len(s.addrs)
}

/// Depth is the capacity of the stack.
///
func (s *Stack) Depth() int {
	return cap(s.addrs)
}

/// Full is true when another Push would overflow.
///
func (s *Stack) Full() bool {
	return len(s.addrs) == cap(s.addrs)
}

/// Addresses returns a copy of the stack contents, bottom first.
///
func (s *Stack) Addresses() []uint16 {
	return append([]uint16(nil), s.addrs...)
}

/// Reset empties the stack.
///
func (s *Stack) Reset() {
	s.addrs = s.addrs[:0]
}
