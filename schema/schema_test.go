package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterLookup(t *testing.T) {
	t1 := time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)
	roster := NewRoster([]Company{
		{Handle: "acme", FundingTime: t1},
		{Handle: "globex", FundingTime: t2},
		{Handle: "acme", FundingTime: t2},
	})

	require.Equal(t, 3, roster.Len())

	c, ok := roster.Lookup("acme")
	assert.True(t, ok)
	assert.Equal(t, t1, c.FundingTime, "duplicate handles resolve to the first row")

	c, ok = roster.Lookup("globex")
	assert.True(t, ok)
	assert.Equal(t, t2, c.FundingTime)

	_, ok = roster.Lookup("missing")
	assert.False(t, ok)
}

func TestRosterLookupFundingTime(t *testing.T) {
	funded := time.Date(2013, 11, 20, 0, 0, 0, 0, time.UTC)
	roster := NewRoster([]Company{{Handle: "initech", FundingTime: funded}})

	got, err := roster.LookupFundingTime("initech")
	require.NoError(t, err)
	assert.Equal(t, funded, got)

	_, err = roster.LookupFundingTime("hooli")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
	assert.Contains(t, err.Error(), "hooli")
}

func TestSubsetLen(t *testing.T) {
	var absent *Subset
	assert.Equal(t, 0, absent.Len())
	assert.Equal(t, 0, (&Subset{Side: PreSide}).Len())
	assert.Equal(t, 2, (&Subset{Side: PostSide, Tweets: make([]Tweet, 2)}).Len())
}
