package events

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/go-errors/errors"

	"github.com/axelarnetwork/utils/jobs"
)

// Filter returns true if an event is the typed event T, false otherwise
func Filter[T proto.Message]() func(e EventWithHeight) bool {
	return func(e EventWithHeight) bool {
		typedEvent, err := sdk.ParseTypedEvent(e.ToABCI())
		if err != nil {
			return false
		}

		return proto.MessageName(typedEvent) == proto.MessageName(*new(T))
	}
}

// Consume processes all events from the given subscriber with the given function.
// Do not consume the same subscriber multiple times.
func Consume[T any](subscriber <-chan T, process func(event T)) jobs.Job {
	return func(ctx context.Context) error {
		errs := make(chan error, 1)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err := <-errs:
				return err
			case e, ok := <-subscriber:
				if !ok {
					return nil
				}
				go func() {
					defer recovery(errs)
					process(e)
				}()
			}
		}
	}
}

// ConsumeSubscription processes all events of a node subscription sequentially until it ends.
// A closed subscription ends the job without error.
func ConsumeSubscription[T any](sub *Subscription[T], process func(event T) error) jobs.Job {
	return func(ctx context.Context) (err error) {
		defer recoverInto(&err)

		for event, err := range sub.All(ctx) {
			if err != nil {
				return err
			}
			if err := process(event); err != nil {
				return err
			}
		}
		return nil
	}
}

func recovery(errChan chan<- error) {
	if r := recover(); r != nil {
		err := fmt.Errorf("job panicked: %s\n%s", r, errors.Wrap(r, 1).Stack())
		select {
		case errChan <- err:
		default:
		}
	}
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("job panicked: %s\n%s", r, errors.Wrap(r, 1).Stack())
	}
}

// OnlyBlockHeight wraps a function that only depends on block height
func OnlyBlockHeight(f func(int64)) func(event EventWithHeight) {
	return func(e EventWithHeight) { f(e.Height) }
}

// AttributeValueSet represents a set of possible values for an Attribute key
type AttributeValueSet struct {
	key    string
	values map[string]struct{}
}

// NewAttributeValueSet creates a set of possible values for an Attribute key from a list of strings
func NewAttributeValueSet(key string, values ...string) AttributeValueSet {
	valMap := make(map[string]struct{})

	for _, v := range values {
		valMap[v] = struct{}{}
	}

	return AttributeValueSet{
		key:    key,
		values: valMap,
	}
}

// Match checks whether the passed event contains an attribute whose value is contained by the set
func (s AttributeValueSet) Match(e Event) bool {
	if value, ok := e.Attributes[s.key]; ok {
		if _, ok := s.values[value]; ok {
			return true
		}
	}
	return false
}

// QueryEventByAttributes creates a predicate for an event of the given type and module with the given attributes
func QueryEventByAttributes(eventType string, module string, attributes ...sdk.Attribute) func(event EventWithHeight) bool {
	return func(e EventWithHeight) bool {
		parsed := Parse(e)
		return parsed.Type == eventType && parsed.Attributes[sdk.AttributeKeyModule] == module && matchAll(parsed, attributes...)
	}
}

// QueryEventByValueSets creates a predicate for an event of the given type and module
// with an attribute value contained in any of the given sets
func QueryEventByValueSets(eventType string, module string, sets ...AttributeValueSet) func(event EventWithHeight) bool {
	return func(e EventWithHeight) bool {
		parsed := Parse(e)
		return parsed.Type == eventType && parsed.Attributes[sdk.AttributeKeyModule] == module && matchAnyValueSet(parsed, sets...)
	}
}

// MatchAttributesPredicate creates a predicate for flattened events with all the given attributes
func MatchAttributesPredicate(attributes ...sdk.Attribute) func(event Event) bool {
	return func(e Event) bool { return matchAll(e, attributes...) }
}

func matchAll(event Event, attributes ...sdk.Attribute) bool {
	for _, attribute := range attributes {
		if event.Attributes[attribute.Key] != attribute.Value {
			return false
		}
	}
	return true
}

func matchAnyValueSet(event Event, sets ...AttributeValueSet) bool {
	for _, s := range sets {
		if s.Match(event) {
			return true
		}
	}
	return false
}
