package parallel

import (
	"fmt"
	"math"
)

// Tags below zero are reserved for collectives
const (
	tagBarrier = -1 - iota
	tagReduce
	tagBcast
)

// Comm is the view of the world from one rank
type Comm struct {
	world *World
	rank  int
}

func (c *Comm) Rank() int { return c.rank }

func (c *Comm) Size() int { return c.world.size }

func (c *Comm) Abort(err error) { c.world.Abort(err) }

func (c *Comm) completed(err error) (r *Request) {
	r = newRequest(c.world.abort)
	r.complete(err)
	return
}

func (c *Comm) checkPeer(peer int) error {
	if peer < 0 || peer >= c.world.size {
		return fmt.Errorf("parallel: peer rank %d outside world of size %d", peer, c.world.size)
	}
	return nil
}

// Isend packs the data selected by dt at offset and posts it to dest. The
// buffer may be reused as soon as Isend returns.
func (c *Comm) Isend(buf []float64, offset int, dt Datatype, dest, tag int) *Request {
	if err := c.checkPeer(dest); err != nil {
		return c.completed(err)
	}
	if err := dt.check(buf, offset); err != nil {
		return c.completed(fmt.Errorf("parallel: send: %v", err))
	}
	c.world.mb.Post(streamKey{Source: c.rank, Dest: dest, Tag: tag}, dt.Pack(buf, offset))
	return c.completed(nil)
}

// Irecv posts a receive into buf through dt at offset. The buffer must not be
// touched until the request completes.
func (c *Comm) Irecv(buf []float64, offset int, dt Datatype, source, tag int) *Request {
	if err := c.checkPeer(source); err != nil {
		return c.completed(err)
	}
	if err := dt.check(buf, offset); err != nil {
		return c.completed(fmt.Errorf("parallel: receive: %v", err))
	}
	r := newRequest(c.world.abort)
	c.world.mb.Receive(streamKey{Source: source, Dest: c.rank, Tag: tag},
		&pendingRecv{buf: buf, offset: offset, dt: dt, req: r})
	return r
}

func (c *Comm) Send(buf []float64, offset int, dt Datatype, dest, tag int) error {
	return c.Isend(buf, offset, dt, dest, tag).Wait()
}

func (c *Comm) Recv(buf []float64, offset int, dt Datatype, source, tag int) error {
	return c.Irecv(buf, offset, dt, source, tag).Wait()
}

// reduce gathers one value per rank on rank 0, combines them with op and
// hands the result back to every rank
func (c *Comm) reduce(val float64, op func(a, b float64) float64) (res float64, err error) {
	var (
		one = Contiguous(1)
		v   = []float64{val}
	)
	if c.rank == 0 {
		res = val
		for src := 1; src < c.world.size; src++ {
			if err = c.Recv(v, 0, one, src, tagReduce); err != nil {
				return
			}
			res = op(res, v[0])
		}
		v[0] = res
		var reqs Requests
		for dst := 1; dst < c.world.size; dst++ {
			reqs.Add(c.Isend(v, 0, one, dst, tagReduce))
		}
		err = reqs.WaitAll()
		return
	}
	if err = c.Send(v, 0, one, 0, tagReduce); err != nil {
		return
	}
	err = c.Recv(v, 0, one, 0, tagReduce)
	res = v[0]
	return
}

func (c *Comm) AllReduceMax(val float64) (float64, error) {
	return c.reduce(val, math.Max)
}

func (c *Comm) AllReduceSum(val float64) (float64, error) {
	return c.reduce(val, func(a, b float64) float64 { return a + b })
}

// Barrier returns once every rank has entered it
func (c *Comm) Barrier() (err error) {
	var (
		none = Contiguous(0)
	)
	if c.rank == 0 {
		for src := 1; src < c.world.size; src++ {
			if err = c.Recv(nil, 0, none, src, tagBarrier); err != nil {
				return
			}
		}
		for dst := 1; dst < c.world.size; dst++ {
			if err = c.Send(nil, 0, none, dst, tagBarrier); err != nil {
				return
			}
		}
		return
	}
	if err = c.Send(nil, 0, none, 0, tagBarrier); err != nil {
		return
	}
	return c.Recv(nil, 0, none, 0, tagBarrier)
}

// Bcast copies buf from root into buf on every other rank
func (c *Comm) Bcast(buf []float64, root int) (err error) {
	if err = c.checkPeer(root); err != nil {
		return
	}
	dt := Contiguous(len(buf))
	if c.rank != root {
		return c.Recv(buf, 0, dt, root, tagBcast)
	}
	var reqs Requests
	for dst := 0; dst < c.world.size; dst++ {
		if dst != root {
			reqs.Add(c.Isend(buf, 0, dt, dst, tagBcast))
		}
	}
	return reqs.WaitAll()
}
