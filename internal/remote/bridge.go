package remote

const commandBuffer = 64

// Bridge is the inbound command queue between the OS control surface and
// the playback service. Pushes never block; when the buffer is full the
// oldest command is dropped, since a consumer that far behind has no use
// for stale input.
type Bridge struct {
	commands chan Command
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{commands: make(chan Command, commandBuffer)}
}

// Push enqueues a command without blocking.
func (b *Bridge) Push(cmd Command) {
	for {
		select {
		case b.commands <- cmd:
			return
		default:
			select {
			case <-b.commands:
			default:
			}
		}
	}
}

// Drain removes and returns all pending commands in arrival order.
func (b *Bridge) Drain() []Command {
	var out []Command
	for {
		select {
		case cmd := <-b.commands:
			out = append(out, cmd)
		default:
			return out
		}
	}
}
