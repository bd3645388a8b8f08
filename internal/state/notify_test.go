package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierChannelsAreIndependent(t *testing.T) {
	var n Notifier
	n.Set(ChannelTask, "task saved")
	h := n.Set(ChannelProject, "project created")

	assert.Equal(t, "task saved", n.Text(ChannelTask))
	assert.Equal(t, "project created", n.Text(ChannelProject))

	assert.True(t, n.Expire(h))
	assert.Empty(t, n.Text(ChannelProject))
	assert.Equal(t, "task saved", n.Text(ChannelTask))
}

func TestNotifierStaleExpiryKeepsNewerMessage(t *testing.T) {
	var n Notifier
	first := n.Set(ChannelTask, "first")
	second := n.Set(ChannelTask, "second")

	assert.False(t, n.Expire(first))
	assert.Equal(t, "second", n.Text(ChannelTask))

	assert.True(t, n.Expire(second))
	assert.Empty(t, n.Text(ChannelTask))
	assert.False(t, n.Expire(second), "already cleared")
}

func TestNotifierClear(t *testing.T) {
	var n Notifier
	h := n.Set(ChannelTask, "x")
	n.Set(ChannelProject, "y")
	n.Clear()

	assert.Empty(t, n.Text(ChannelTask))
	assert.Empty(t, n.Text(ChannelProject))
	assert.False(t, n.Expire(h))
}
