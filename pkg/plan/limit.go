package plan

import "github.com/lattixdb/cyphercore/pkg/frame"

// Skip is a streaming offset.
type Skip struct {
	buffered
	Child Operator
	N     int
}

func NewSkip(child Operator, n int) *Skip {
	s := &Skip{Child: child, N: n}
	s.schema = child.Schema()
	return s
}

func (s *Skip) Open(ctx *Context) error {
	if err := s.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(s.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(s.schema, rows).Skip(s.N)
	if err != nil {
		return err
	}
	s.fill(df)
	return nil
}

// Limit is a streaming row cap.
type Limit struct {
	buffered
	Child Operator
	N     int
}

func NewLimit(child Operator, n int) *Limit {
	l := &Limit{Child: child, N: n}
	l.schema = child.Schema()
	return l
}

func (l *Limit) Open(ctx *Context) error {
	if err := l.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(l.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(l.schema, rows).Take(l.N)
	if err != nil {
		return err
	}
	l.fill(df)
	return nil
}
