package broker

import (
	"context"

	"github.com/andrzejandrzej/rabbit-tools/internal/selection"
)

// DeleteAction removes queues. Deleted queues leave the listing, so their
// ordinals are retired.
type DeleteAction struct {
	client *Client
}

// NewDeleteAction returns the delete action bound to client.
func NewDeleteAction(client *Client) *DeleteAction {
	return &DeleteAction{client: client}
}

func (a *DeleteAction) Info() selection.ActionInfo {
	return selection.ActionInfo{
		Name:                "delete",
		Description:         "Delete selected queues",
		RemovesQueue:        true,
		AffectedMessage:     "Successfully deleted queues",
		NotAffectedMessage:  "Cannot delete queue",
		NoneAffectedMessage: "No queues have been deleted.",
	}
}

func (a *DeleteAction) Apply(ctx context.Context, vhost, queue string) error {
	return a.client.DeleteQueue(ctx, vhost, queue)
}

// PurgeAction empties queues without removing them.
type PurgeAction struct {
	client *Client
}

// NewPurgeAction returns the purge action bound to client.
func NewPurgeAction(client *Client) *PurgeAction {
	return &PurgeAction{client: client}
}

func (a *PurgeAction) Info() selection.ActionInfo {
	return selection.ActionInfo{
		Name:                "purge",
		Description:         "Purge selected queues",
		AffectedMessage:     "Successfully purged queues",
		NotAffectedMessage:  "Cannot purge the queue",
		NoneAffectedMessage: "No queues have been purged.",
	}
}

func (a *PurgeAction) Apply(ctx context.Context, vhost, queue string) error {
	return a.client.PurgeQueue(ctx, vhost, queue)
}

var (
	_ selection.QueueAction = (*DeleteAction)(nil)
	_ selection.QueueAction = (*PurgeAction)(nil)
	_ selection.Lister      = (*Client)(nil)
)
