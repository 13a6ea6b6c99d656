package view

// ChangeCallback receives a snapshot of the state after each mutation.
type ChangeCallback func(state State)

// ChangeEventChannel creates a channel of state changes and returns both
// the channel and the callback feeding it. Changes are dropped when the
// channel is full so that the controller never blocks on a slow reader.
func ChangeEventChannel() (<-chan State, ChangeCallback) {
	ch := make(chan State, 10)

	callback := func(state State) {
		select {
		case ch <- state:
		default:
		}
	}

	return ch, callback
}
