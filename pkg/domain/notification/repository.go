package notification

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=notification_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, to Recipient, unreadOnly bool, limit int) ([]Notification, error)
}
