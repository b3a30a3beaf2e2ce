package events

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "events"

// ErrSubscription is returned for duplicate subscriptions and failed unsubscribes
var ErrSubscription = errorsmod.Register(codespace, 1, "subscription error")
