package pool

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments on every acquire, so a handle
// only ever refers to one activation of its slot and goes stale once that
// activation ends.
type Handle uint64

func NewHandle(index uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
