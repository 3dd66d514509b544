package styleable

// SlotState distinguishes an unset slot from an explicit null.
type SlotState uint8

const (
	SlotAbsent SlotState = iota
	SlotNull
	SlotValue
)

func (s SlotState) String() string {
	switch s {
	case SlotNull:
		return "null"
	case SlotValue:
		return "value"
	default:
		return "absent"
	}
}

// slot is the storage cell for one (key, origin) pair.
type slot struct {
	state SlotState
	value any
}

func slotOf(value any) slot {
	if value == nil {
		return slot{state: SlotNull}
	}
	return slot{state: SlotValue, value: value}
}

func (s slot) present() bool {
	return s.state != SlotAbsent
}
