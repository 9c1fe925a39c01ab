package chip8

/// Keypad holds the current state for the 16-key hex pad.
///
type Keypad [16]bool

/// Press emulates key i being pressed.
///
func (k *Keypad) Press(i uint) error {
	if i >= uint(len(k)) {
		return ErrKeyRange
	}

	k[i] = true
	return nil
}

/// Release emulates key i being released.
///
func (k *Keypad) Release(i uint) error {
	if i >= uint(len(k)) {
		return ErrKeyRange
	}

	k[i] = false
	return nil
}

/// Status returns true if key i is down. Keys out of range are never down.
///
func (k *Keypad) Status(i uint) bool {
	return i < uint(len(k)) && k[i]
}

/// FirstPressed returns the lowest numbered key that is down.
///
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, down := range k {
		if down {
			return uint8(i), true
		}
	}

	return 0, false
}

/// Reset releases all keys.
///
func (k *Keypad) Reset() {
	*k = Keypad{}
}
