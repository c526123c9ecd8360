package tui

type state int

const (
	loadingState state = iota
	weatherState
	storiesState
	errorState
)

func (s state) String() string {
	switch s {
	case loadingState:
		return "loading"
	case weatherState:
		return "weather"
	case storiesState:
		return "stories"
	case errorState:
		return "error"
	default:
		return "unknown"
	}
}
