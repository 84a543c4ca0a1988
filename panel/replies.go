package panel

// ReplyHandler processes one read reply for a registered register.
type ReplyHandler func(f Frame)

type replyEntry struct {
	addr    uint16
	name    string
	handler ReplyHandler
}

// ReplyRegistry dispatches 0x83 read replies by register address. Key
// events are not registered here; the console routes them to the page
// dispatch instead.
type ReplyRegistry struct {
	entries []replyEntry
}

// NewReplyRegistry returns an empty registry.
func NewReplyRegistry() *ReplyRegistry {
	return &ReplyRegistry{}
}

// Register binds a handler to a reply register. A second registration
// for the same address replaces the first.
func (r *ReplyRegistry) Register(addr uint16, name string, h ReplyHandler) {
	for i := range r.entries {
		if r.entries[i].addr == addr {
			r.entries[i].name = name
			r.entries[i].handler = h
			return
		}
	}
	r.entries = append(r.entries, replyEntry{addr: addr, name: name, handler: h})
}

// Dispatch routes a read reply to its handler. Unregistered addresses
// are ignored; returns whether a handler ran.
func (r *ReplyRegistry) Dispatch(f Frame) bool {
	if f.Cmd != CmdRead {
		return false
	}
	for i := range r.entries {
		if r.entries[i].addr == f.Addr {
			r.entries[i].handler(f)
			return true
		}
	}
	return false
}

// Name returns the registered name for an address, for trace output.
func (r *ReplyRegistry) Name(addr uint16) string {
	for i := range r.entries {
		if r.entries[i].addr == addr {
			return r.entries[i].name
		}
	}
	return ""
}
