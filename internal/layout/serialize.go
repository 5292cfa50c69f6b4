package layout

import (
	"encoding/json"
	"fmt"

	"edshell/internal/jsonutil"
)

// Encode serializes the state to JSON for persisting a layout across
// sessions. The state is validated first so a corrupted tree is never written
// to disk.
func Encode(s State) ([]byte, error) {
	if err := CheckInvariants(s); err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a serialized layout and re-validates every invariant, so a
// hand-edited or truncated layout file is rejected instead of loaded. Callers
// that keep a parent index must rebuild it from the returned state.
func Decode(data []byte) (State, error) {
	var s State
	if err := jsonutil.UnmarshalStrict(data, &s, "decode layout"); err != nil {
		return State{}, err
	}
	if err := CheckInvariants(s); err != nil {
		return State{}, fmt.Errorf("decode layout: %w", err)
	}
	return s, nil
}
