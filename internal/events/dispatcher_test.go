package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var first, second []Event
	d.Subscribe(EventAccountRegistered, func(_ context.Context, e Event) error {
		first = append(first, e)
		return errors.New("handler failure must not stop delivery")
	})
	d.Subscribe(EventAccountRegistered, func(_ context.Context, e Event) error {
		second = append(second, e)
		return nil
	})

	event := NewAccountRegistered(AccountRegisteredPayload{AccountID: "account-1", UserType: "attorney"})
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, first, 1)
	require.Len(t, second, 1)

	payload, ok := second[0].Payload.(AccountRegisteredPayload)
	require.True(t, ok)
	assert.Equal(t, "account-1", payload.AccountID)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventType("account.deleted"), func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewAccountRegistered(AccountRegisteredPayload{})))
	assert.False(t, called)
}
