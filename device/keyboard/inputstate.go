package keyboard

// KeyAndChar is one composed character together with the key that produced
// it.
type KeyAndChar struct {
	Key  Key  `json:"key" yaml:"key"`
	Char rune `json:"char" yaml:"char"`
}

// None is returned by ReadKey when no character is buffered.
var None = KeyAndChar{}

// charQueue is a fixed-capacity FIFO that refuses new entries when full.
type charQueue struct {
	buf   [QueueCapacity]KeyAndChar
	head  int
	count int
}

// push appends kc and reports whether there was room for it.
func (q *charQueue) push(kc KeyAndChar) bool {
	if q.count == len(q.buf) {
		return false
	}
	q.buf[(q.head+q.count)%len(q.buf)] = kc
	q.count++
	return true
}

func (q *charQueue) pop() (KeyAndChar, bool) {
	if q.count == 0 {
		return None, false
	}
	kc := q.buf[q.head]
	q.buf[q.head] = None
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return kc, true
}

func (q *charQueue) reset() {
	*q = charQueue{}
}
