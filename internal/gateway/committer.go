package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/pinboard/internal/domain"
)

type OpKind int

const (
	OpCreate OpKind = iota + 1
	OpUpdate
	OpPosition
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpPosition:
		return "position"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one queued persistence call.
type Op struct {
	Kind   OpKind
	NoteID string
	Note   *domain.Note     // OpCreate
	Patch  domain.NotePatch // OpUpdate
	X, Y   float64          // OpPosition
}

func CreateOp(n *domain.Note) Op {
	return Op{Kind: OpCreate, NoteID: n.ID, Note: n.Clone()}
}

func UpdateOp(id string, patch domain.NotePatch) Op {
	return Op{Kind: OpUpdate, NoteID: id, Patch: patch}
}

func PositionOp(id string, x, y float64) Op {
	return Op{Kind: OpPosition, NoteID: id, X: x, Y: y}
}

func DeleteOp(id string) Op {
	return Op{Kind: OpDelete, NoteID: id}
}

// Failure reports an op the gateway refused or could not deliver.
type Failure struct {
	Op  Op
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s note %s: %v", f.Op.Kind, f.Op.NoteID, f.Err)
}

const (
	DefaultQueueSize   = 256
	failureChannelSize = 32
)

// Committer delivers ops to a Gateway from a single goroutine, in the
// order they were enqueued. Enqueue never blocks on I/O.
//
// While an op waits, a later op of the same kind for the same note is
// folded into it, provided no other op for that note sits between them.
// Drags therefore cost one call per burst rather than one per pointer move.
type Committer struct {
	gw     Gateway
	logger *slog.Logger

	mu     sync.Mutex
	queue  []Op
	limit  int
	closed bool

	wake     chan struct{}
	done     chan struct{}
	failures chan Failure
}

func NewCommitter(gw Gateway, logger *slog.Logger, queueSize int) *Committer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Committer{
		gw:       gw,
		logger:   logger,
		limit:    queueSize,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		failures: make(chan Failure, failureChannelSize),
	}
}

// Enqueue queues op for delivery.
func (c *Committer) Enqueue(op Op) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCommitterClosed
	}
	if !c.coalesce(op) {
		if len(c.queue) >= c.limit {
			return ErrQueueFull
		}
		c.queue = append(c.queue, op)
	}
	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// coalesce folds op into the latest queued op for the same note when both
// have the same kind. Patches that touch the lock flag are kept separate.
func (c *Committer) coalesce(op Op) bool {
	for i := len(c.queue) - 1; i >= 0; i-- {
		prev := &c.queue[i]
		if prev.NoteID != op.NoteID {
			continue
		}
		if prev.Kind != op.Kind {
			return false
		}
		switch op.Kind {
		case OpPosition:
			prev.X, prev.Y = op.X, op.Y
			return true
		case OpUpdate:
			if prev.Patch.IsLocked != nil || op.Patch.IsLocked != nil {
				return false
			}
			prev.Patch = prev.Patch.Merge(op.Patch)
			return true
		default:
			return false
		}
	}
	return false
}

// Pending returns the number of queued ops not yet taken by Run.
func (c *Committer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Failures delivers ops that did not persist. It is closed when Run
// returns. Failures are dropped (and logged) if nobody reads them.
func (c *Committer) Failures() <-chan Failure {
	return c.failures
}

// Done is closed when Run returns.
func (c *Committer) Done() <-chan struct{} {
	return c.done
}

// Close stops accepting ops. Run drains what is queued and then returns.
func (c *Committer) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run delivers ops until Close has been called and the queue is empty, or
// until ctx is cancelled. It must be called once.
func (c *Committer) Run(ctx context.Context) error {
	defer close(c.done)
	defer close(c.failures)

	for {
		op, ok, closed := c.next()
		if ok {
			c.apply(ctx, op)
			continue
		}
		if closed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
		}
	}
}

func (c *Committer) next() (Op, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return Op{}, false, c.closed
	}
	op := c.queue[0]
	c.queue[0] = Op{}
	c.queue = c.queue[1:]
	return op, true, c.closed
}

func (c *Committer) apply(ctx context.Context, op Op) {
	var err error
	switch op.Kind {
	case OpCreate:
		_, err = c.gw.CreateNote(ctx, op.Note)
	case OpUpdate:
		_, err = c.gw.UpdateNote(ctx, op.NoteID, op.Patch)
	case OpPosition:
		_, err = c.gw.UpdatePosition(ctx, op.NoteID, op.X, op.Y)
	case OpDelete:
		err = c.gw.DeleteNote(ctx, op.NoteID)
	default:
		err = fmt.Errorf("unknown op kind %d", int(op.Kind))
	}
	if err == nil {
		c.logger.Debug("commit", "op", op.Kind.String(), "note_id", op.NoteID)
		return
	}

	f := Failure{Op: op, Err: err}
	c.logger.Warn("commit_failed", "op", op.Kind.String(), "note_id", op.NoteID, "error", err.Error())
	select {
	case c.failures <- f:
	default:
		c.logger.Warn("commit_failure_dropped", "note_id", op.NoteID)
	}
}
