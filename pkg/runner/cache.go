package runner

import (
	"container/list"
	"sort"
	"sync"
	"time"

	"github.com/lattixdb/cyphercore/pkg/cypherparse"
)

// StatementCache caches parsed Statements by query text. What's safe to
// reuse across executions of the same text is the parse, not a built
// plan.Operator (Open may only run once per instance), so a hit here
// still costs a fresh Compile+Optimize, just not a re-parse.
//
// Eviction uses an LRU policy: a container/list tracks recency, a map
// indexes into it, and a Put past capacity evicts the back of the list.
// maxSize <= 0 means unbounded, disabling eviction entirely.
type StatementCache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
}

type statementEntry struct {
	queryText string
	stmt      *cypherparse.Statement
}

func NewStatementCache(maxSize int) *StatementCache {
	return &StatementCache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *StatementCache) Get(queryText string) (*cypherparse.Statement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[queryText]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*statementEntry).stmt, true
}

func (c *StatementCache) Put(queryText string, stmt *cypherparse.Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[queryText]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*statementEntry).stmt = stmt
		return
	}

	elem := c.order.PushFront(&statementEntry{queryText: queryText, stmt: stmt})
	c.items[queryText] = elem

	if c.maxSize > 0 && c.order.Len() > c.maxSize {
		c.evictOldest()
	}
}

func (c *StatementCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*statementEntry).queryText)
}

// QueryStatistics tracks one query text's execution history.
type QueryStatistics struct {
	QueryText      string
	ExecutionCount int
	TotalDuration  time.Duration
	AvgDuration    time.Duration
	LastSucceeded  bool
}

// StatisticsTracker accumulates QueryStatistics per query text.
type StatisticsTracker struct {
	mu    sync.Mutex
	stats map[string]*QueryStatistics
}

func NewStatisticsTracker() *StatisticsTracker {
	return &StatisticsTracker{stats: make(map[string]*QueryStatistics)}
}

func (t *StatisticsTracker) Record(queryText string, d time.Duration, succeeded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.stats[queryText]
	if !ok {
		s = &QueryStatistics{QueryText: queryText}
		t.stats[queryText] = s
	}
	s.ExecutionCount++
	s.TotalDuration += d
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
	s.LastSucceeded = succeeded
}

// Top returns the limit most frequently executed query texts, descending
// by execution count.
func (t *StatisticsTracker) Top(limit int) []*QueryStatistics {
	t.mu.Lock()
	defer t.mu.Unlock()
	all := make([]*QueryStatistics, 0, len(t.stats))
	for _, s := range t.stats {
		cp := *s
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExecutionCount > all[j].ExecutionCount })
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}
