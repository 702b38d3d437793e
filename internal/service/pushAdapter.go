package service

import (
	"context"

	"github.com/eboniejc/muse-app/pkg/onesignal"
)

// oneSignalAdapter bridges the push gateway interface to the OneSignal
// client.
type oneSignalAdapter struct {
	client *onesignal.Client
}

func NewOneSignalGateway(client *onesignal.Client) PushGateway {
	return &oneSignalAdapter{client: client}
}

func (a *oneSignalAdapter) Schedule(ctx context.Context, n *PushNotification) (string, error) {
	return a.client.Schedule(ctx, &onesignal.Notification{
		Headings:       n.Headings,
		Contents:       n.Contents,
		ExternalUserID: n.ExternalUserID,
		SendAfter:      n.SendAfter,
	})
}

func (a *oneSignalAdapter) Cancel(ctx context.Context, id string) (bool, error) {
	return a.client.Cancel(ctx, id)
}
