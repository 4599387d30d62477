package parallel

import "errors"

var ErrAborted = errors.New("parallel: world aborted")

// Request is the handle of a non-blocking operation
type Request struct {
	done  chan struct{}
	abort <-chan struct{}
	err   error
}

func newRequest(abort <-chan struct{}) *Request {
	return &Request{done: make(chan struct{}), abort: abort}
}

func (r *Request) complete(err error) {
	r.err = err
	close(r.done)
}

// Wait blocks until the operation finished or the world was aborted
func (r *Request) Wait() error {
	select {
	case <-r.done:
		return r.err
	case <-r.abort:
		// completion and abort can race, prefer the completed result
		select {
		case <-r.done:
			return r.err
		default:
			return ErrAborted
		}
	}
}

// Requests collects the handles of one communication round
type Requests []*Request

func (rs *Requests) Add(r ...*Request) {
	*rs = append(*rs, r...)
}

// WaitAll waits on every request and returns the first error
func (rs Requests) WaitAll() (err error) {
	return WaitAll(rs...)
}

func WaitAll(reqs ...*Request) (err error) {
	for _, r := range reqs {
		if r == nil {
			continue
		}
		if e := r.Wait(); e != nil && err == nil {
			err = e
		}
	}
	return
}
