package notification

import (
	"errors"
	"sync"
	"testing"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []Notification
	fail    bool
}

func (f *fakeNotificationRepo) Create(n *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("store down")
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(userID uint, limit int) ([]Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountUnread(userID uint) (int64, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkRead(userID, id uint) error         { return nil }
func (f *fakeNotificationRepo) MarkAllRead(userID uint) error          { return nil }

func TestDispatcherDelivers(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(repo, 8)

	d.Notify(7, "Registration Verified", "Your registration REG-1 has been verified.", SeveritySuccess)
	d.Notify(7, "Registration Rejected", "Your registration REG-2 was rejected.", SeverityError)
	d.Close()

	if len(repo.created) != 2 {
		t.Fatalf("created = %d notifications, want 2", len(repo.created))
	}
	if repo.created[0].UserID != 7 || repo.created[0].Severity != SeveritySuccess {
		t.Errorf("first notification = %+v", repo.created[0])
	}
}

func TestDispatcherSwallowsStoreFailure(t *testing.T) {
	repo := &fakeNotificationRepo{fail: true}
	d := NewDispatcher(repo, 8)

	// Must not panic or block; failure is logged and discarded.
	d.Notify(1, "t", "m", SeverityInfo)
	d.Close()

	if len(repo.created) != 0 {
		t.Errorf("created = %d, want 0", len(repo.created))
	}
}
