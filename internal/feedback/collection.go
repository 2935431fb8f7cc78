package feedback

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a record id is not in the collection.
var ErrNotFound = errors.New("feedback: record not found")

// Record is a draft that has been accepted into the collection.
type Record struct {
	ID        string
	Text      string
	Rating    int
	CreatedAt time.Time
}

// Stats summarizes the collection.
type Stats struct {
	Count   int
	Average float64
}

// AverageLabel formats the average with one decimal, dropping a trailing ".0".
func (s Stats) AverageLabel() string {
	label := strconv.FormatFloat(s.Average, 'f', 1, 64)
	return strings.TrimSuffix(label, ".0")
}

// CollectionOption customizes Collection construction.
type CollectionOption func(*Collection)

// WithLogger attaches a structured logger for mutations.
func WithLogger(logger *zap.Logger) CollectionOption {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the timestamp source, mostly for tests.
func WithClock(now func() time.Time) CollectionOption {
	return func(c *Collection) {
		if now != nil {
			c.now = now
		}
	}
}

// Collection is the in-memory owner of the feedback list. Newest records
// come first.
type Collection struct {
	mu      sync.Mutex
	records []Record
	logger  *zap.Logger
	now     func() time.Time
}

// NewCollection returns an empty collection.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Seed appends drafts after any existing records, preserving their order.
func (c *Collection) Seed(drafts []Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range drafts {
		c.records = append(c.records, c.newRecord(d))
	}
	if len(drafts) > 0 {
		c.logger.Debug("seeded feedback", zap.Int("count", len(drafts)))
	}
}

// Add stores a draft as a new record at the head of the list.
func (c *Collection) Add(d Draft) Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := c.newRecord(d)
	c.records = append([]Record{rec}, c.records...)
	c.logger.Info("feedback added",
		zap.String("id", rec.ID),
		zap.Int("rating", rec.Rating),
		zap.Int("length", TrimmedLength(rec.Text)))
	return rec
}

// Update replaces the text and rating of an existing record.
func (c *Collection) Update(id string, d Draft) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.logger.Warn("feedback update for unknown id", zap.String("id", id))
		return Record{}, ErrNotFound
	}
	c.records[idx].Text = strings.TrimSpace(d.Text)
	c.records[idx].Rating = d.Rating
	c.logger.Info("feedback updated", zap.String("id", id), zap.Int("rating", d.Rating))
	return c.records[idx], nil
}

// Delete removes a record.
func (c *Collection) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	c.logger.Info("feedback deleted", zap.String("id", id))
	return nil
}

// Get looks a record up by id.
func (c *Collection) Get(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}
	return c.records[idx], true
}

// List returns a copy of the records, newest first.
func (c *Collection) List() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Stats returns the record count and mean rating.
func (c *Collection) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.records) == 0 {
		return Stats{}
	}
	total := 0
	for _, rec := range c.records {
		total += rec.Rating
	}
	return Stats{
		Count:   len(c.records),
		Average: float64(total) / float64(len(c.records)),
	}
}

func (c *Collection) newRecord(d Draft) Record {
	return Record{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(d.Text),
		Rating:    d.Rating,
		CreatedAt: c.now(),
	}
}

func (c *Collection) indexOf(id string) int {
	for i, rec := range c.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
