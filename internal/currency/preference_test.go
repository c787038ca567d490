package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
)

func TestPreference_SetAndToggle(t *testing.T) {
	p := currency.NewPreference(currency.EUR)
	assert.Equal(t, currency.EUR, p.Primary())
	assert.Equal(t, currency.NGN, p.Secondary())

	assert.Equal(t, currency.NGN, p.Toggle())
	assert.Equal(t, currency.NGN, p.Primary())
	assert.Equal(t, currency.EUR, p.Secondary())

	p.SetPrimary(currency.EUR)
	assert.Equal(t, currency.EUR, p.Primary())
}

func TestPreference_Subscribe(t *testing.T) {
	p := currency.NewPreference(currency.EUR)

	var seen []currency.Code

	unsubscribe := p.Subscribe(func(c currency.Code) {
		seen = append(seen, c)
	})

	p.SetPrimary(currency.NGN)
	p.Toggle()
	unsubscribe()
	p.SetPrimary(currency.NGN)

	assert.Equal(t, []currency.Code{currency.NGN, currency.EUR}, seen)
}

func TestPreference_SubscriberMayReadState(t *testing.T) {
	p := currency.NewPreference(currency.EUR)

	var got currency.Code

	p.Subscribe(func(currency.Code) {
		got = p.Primary()
	})

	p.SetPrimary(currency.NGN)
	assert.Equal(t, currency.NGN, got)
}
