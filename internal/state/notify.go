package state

// Channel is a notification slot
type Channel int

const (
	ChannelTask Channel = iota
	ChannelProject
)

func (c Channel) String() string {
	if c == ChannelProject {
		return "project"
	}
	return "task"
}

// Handle identifies one message set on a channel
type Handle struct {
	Channel Channel
	seq     uint64
}

type slot struct {
	text string
	seq  uint64
}

// Notifier keeps one message per channel. Each Set returns a handle and a
// later Expire with an older handle leaves the newer message in place.
type Notifier struct {
	slots [2]slot
	seq   uint64
}

// Set replaces the message on ch
func (n *Notifier) Set(ch Channel, text string) Handle {
	n.seq++
	n.slots[ch] = slot{text: text, seq: n.seq}
	return Handle{Channel: ch, seq: n.seq}
}

// Expire clears the message h was issued for, if it is still shown
func (n *Notifier) Expire(h Handle) bool {
	cur := &n.slots[h.Channel]
	if cur.seq != h.seq || cur.text == "" {
		return false
	}
	*cur = slot{}
	return true
}

// Text returns the message shown on ch, or ""
func (n *Notifier) Text(ch Channel) string {
	return n.slots[ch].text
}

// Clear empties every channel
func (n *Notifier) Clear() {
	n.slots = [2]slot{}
}
