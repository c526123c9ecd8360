package story

import "context"

// Static is a fixed source, mainly for tests and the inline command's --items flag.
type Static struct {
	Items []Item
	Err   error
	// Calls counts Fetch invocations.
	Calls int
}

func (*Static) Name() string {
	return "static"
}

func (s *Static) Fetch(ctx context.Context) ([]Item, error) {
	s.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]Item(nil), s.Items...), nil
}
