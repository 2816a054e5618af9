package routing

import "github.com/nebulavoice/translate-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(callbacks controllerCallbacks) eventEmitter {
	return func(event events.Event) {
		if callbacks.onEvent != nil {
			callbacks.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.TurnOpened:
			if callbacks.onTurnOpened != nil {
				callbacks.onTurnOpened(typedEvent)
			}
		case events.TurnClosed:
			if callbacks.onTurnClosed != nil {
				callbacks.onTurnClosed(typedEvent)
			}
		case events.TurnPreempted:
			if callbacks.onTurnPreempted != nil {
				callbacks.onTurnPreempted(typedEvent)
			}
		}
	}
}
