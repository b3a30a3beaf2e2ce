package events

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/libs/pubsub/query"
	tm "github.com/cometbft/cometbft/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// QueryBuilder is a builder struct to create an event query of the form tm.event='<EventType>' AND key='value' ...
type QueryBuilder struct {
	eventType string
	ands      []string
}

// NewQuery initializes a QueryBuilder for a query that matches the given subscription event type, e.g. NewBlock or Tx
func NewQuery(tmEvent string) QueryBuilder {
	return QueryBuilder{}.Match(tm.EventTypeKey, tmEvent)
}

// NewTxEventQuery initializes a QueryBuilder for a query that matches transactions emitting the given ABCI event type
func NewTxEventQuery(eventType string) QueryBuilder {
	return QueryBuilder{eventType: eventType}.Match(tm.EventTypeKey, tm.EventTx)
}

// NewBlockEventQuery initializes a QueryBuilder for a query that matches blocks emitting the given ABCI event type
func NewBlockEventQuery(eventType string) QueryBuilder {
	return QueryBuilder{eventType: eventType}.Match(tm.EventTypeKey, tm.EventNewBlock)
}

// Match adds a predicate to match the given key and value exactly to the query
func (q QueryBuilder) Match(key, value string) QueryBuilder {
	q.ands = append(q.ands[:len(q.ands):len(q.ands)], fmt.Sprintf("%s='%s'", key, value))
	return q
}

// MatchTxHash adds a predicate for the transaction hash, given in hex
func (q QueryBuilder) MatchTxHash(hash string) QueryBuilder {
	return q.Match(tm.TxHashKey, strings.ToUpper(strings.TrimPrefix(hash, "0x")))
}

// MatchHeight adds a predicate for the block height
func (q QueryBuilder) MatchHeight(height int64) QueryBuilder {
	q.ands = append(q.ands[:len(q.ands):len(q.ands)], fmt.Sprintf("%s=%d", tm.TxHeightKey, height))
	return q
}

// MatchAction adds a predicate to match the given action event attribute to the query
func (q QueryBuilder) MatchAction(action string) QueryBuilder {
	return q.MatchAttributes(sdk.Attribute{Key: sdk.AttributeKeyAction, Value: action})
}

// MatchModule adds a predicate to match the given module event attribute to the query
func (q QueryBuilder) MatchModule(module string) QueryBuilder {
	return q.MatchAttributes(sdk.Attribute{Key: sdk.AttributeKeyModule, Value: module})
}

// MatchAttributes adds a predicate to match all the given event attributes to the query
func (q QueryBuilder) MatchAttributes(attributes ...sdk.Attribute) QueryBuilder {
	for _, attribute := range attributes {
		q = q.Match(CompositeKey(q.eventType, attribute.Key), attribute.Value)
	}
	return q
}

// String returns the query without validating it
func (q QueryBuilder) String() string {
	return strings.Join(q.ands, " AND ")
}

// Build returns the query string after checking it against the node's query grammar
func (q QueryBuilder) Build() (string, error) {
	s := q.String()
	if err := ValidateQuery(s); err != nil {
		return "", err
	}
	return s, nil
}

// MustBuild panics if the query is invalid
func (q QueryBuilder) MustBuild() string {
	s, err := q.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateQuery returns an error if the node would reject the query
func ValidateQuery(q string) error {
	if _, err := query.New(q); err != nil {
		return errorsmod.Wrapf(ErrSubscription, "invalid query %q: %v", q, err)
	}
	return nil
}

// CompositeKey returns the query key of an attribute of the given ABCI event type
func CompositeKey(eventType, attrKey string) string {
	if eventType == "" {
		return attrKey
	}
	return fmt.Sprintf("%s.%s", eventType, attrKey)
}
