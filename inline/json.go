package inline

import (
	"encoding/json"

	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
)

type Story struct {
	story.Item
	Progress float64 `json:"progress"`
	Active   bool    `json:"active"`
}

type Output struct {
	// Source is the name of the story source.
	Source string `json:"source"`
	// Phase is the playback phase when the run ended.
	Phase    string   `json:"phase"`
	Autoplay bool     `json:"autoplay"`
	Result   []*Story `json:"result"`
}

func newOutput(source string, state playback.State) *Output {
	active := state.Active.OrElse(-1)
	result := make([]*Story, len(state.Items))
	for i, item := range state.Items {
		result[i] = &Story{
			Item:     item,
			Progress: state.ProgressOf(item.ID),
			Active:   i == active,
		}
	}

	return &Output{
		Source:   source,
		Phase:    state.Phase().String(),
		Autoplay: state.IsAutoPlaying,
		Result:   result,
	}
}

func asJson(source string, state playback.State) ([]byte, error) {
	return json.Marshal(newOutput(source, state))
}
