package platform

import "context"

// UdemyAdapter is connectable but fetches nothing until the Udemy consent
// flow is in place. TODO: implement the affiliate API course fetch once a
// client id is provisioned.
type UdemyAdapter struct{}

func NewUdemyAdapter() *UdemyAdapter { return &UdemyAdapter{} }

func (a *UdemyAdapter) Name() string { return Udemy }

func (a *UdemyAdapter) Fetch(ctx context.Context, session Session) (Payload, error) {
	return Payload{}, nil
}
