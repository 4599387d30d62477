package parallel

import (
	"fmt"
	"sync"
)

type streamKey struct {
	Source, Dest, Tag int
}

type pendingRecv struct {
	buf    []float64
	offset int
	dt     Datatype
	req    *Request
}

// stream holds the ordered traffic between one source and destination with a
// single tag. Either undelivered messages or unmatched receives are queued,
// never both.
type stream struct {
	msgs  [][]float64
	recvs []*pendingRecv
}

// MailBox matches sends with receives in posting order for every
// (source, destination, tag) triple
type MailBox struct {
	mu      sync.Mutex
	streams map[streamKey]*stream
}

func NewMailBox() *MailBox {
	return &MailBox{streams: make(map[streamKey]*stream)}
}

func (mb *MailBox) getStream(key streamKey) (s *stream) {
	var ok bool
	if s, ok = mb.streams[key]; !ok {
		s = &stream{}
		mb.streams[key] = s
	}
	return
}

// Post delivers msg to the oldest unmatched receive or queues it
func (mb *MailBox) Post(key streamKey, msg []float64) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	s := mb.getStream(key)
	if len(s.recvs) == 0 {
		s.msgs = append(s.msgs, msg)
		return
	}
	pr := s.recvs[0]
	s.recvs[0] = nil
	s.recvs = s.recvs[1:]
	deliver(pr, msg)
}

// Receive matches pr with the oldest queued message or queues the receive
func (mb *MailBox) Receive(key streamKey, pr *pendingRecv) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	s := mb.getStream(key)
	if len(s.msgs) == 0 {
		s.recvs = append(s.recvs, pr)
		return
	}
	msg := s.msgs[0]
	s.msgs[0] = nil
	s.msgs = s.msgs[1:]
	deliver(pr, msg)
}

func deliver(pr *pendingRecv, msg []float64) {
	if len(msg) != pr.dt.Size() {
		pr.req.complete(fmt.Errorf("message of %d elements does not match receive of %d elements",
			len(msg), pr.dt.Size()))
		return
	}
	pr.dt.Unpack(pr.buf, pr.offset, msg)
	pr.req.complete(nil)
}
