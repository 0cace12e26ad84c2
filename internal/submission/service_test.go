package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/credlane/credlane/internal/user"
)

var (
	alice = user.User{ID: "user-alice", Email: "alice@x.com", Role: user.RoleUser}
	bob   = user.User{ID: "user-bob", Email: "bob@x.com", Role: user.RoleUser}
	admin = user.User{ID: "user-admin", Email: "admin@x.com", Role: user.RoleAdministrator}
)

func testPayload() Payload {
	return Payload{
		PersonalInfo: PersonalInfo{FirstName: "Alice", LastName: "A", Email: "alice@x.com", Phone: "0650000000"},
		LoanRequest:  LoanRequest{LoanAmount: "500000", LoanDuration: "24", LoanPurpose: "business"},
	}
}

func TestAppendStampsServerFields(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	record, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if record.Status != StatusPending {
		t.Fatalf("new submissions must start pending, got %s", record.Status)
	}
	if record.OwnerUserID != alice.ID || record.OwnerEmail != alice.Email {
		t.Fatalf("owner must come from the caller, got %s/%s", record.OwnerUserID, record.OwnerEmail)
	}
	if record.ID == "" || record.SubmittedAt.IsZero() {
		t.Fatalf("append must assign id and timestamp, got %+v", record)
	}
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	first, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	// Numeric-string ids of equal magnitude compare by value.
	if len(second.ID) < len(first.ID) || (len(second.ID) == len(first.ID) && second.ID <= first.ID) {
		t.Fatalf("ids must increase: %s then %s", first.ID, second.ID)
	}
}

func TestAppendRefusesAnonymousWrites(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)

	if _, err := svc.Append(context.Background(), testPayload(), user.User{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestListFiltersByOwnerUnlessAdmin(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	fromAlice, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := svc.Append(ctx, testPayload(), bob); err != nil {
		t.Fatalf("append: %v", err)
	}

	own, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if len(own) != 1 || own[0].ID != fromAlice.ID {
		t.Fatalf("alice must see exactly her submission, got %+v", own)
	}

	asBob, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("list as bob: %v", err)
	}
	for _, r := range asBob {
		if r.OwnerUserID == alice.ID {
			t.Fatalf("bob must not see alice's submission")
		}
	}

	all, err := svc.List(ctx, admin)
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("administrator must see all records, got %d", len(all))
	}
	if all[0].ID != fromAlice.ID {
		t.Fatalf("admin listing must keep insertion order")
	}

	if _, err := svc.List(ctx, user.User{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous list must fail, got %v", err)
	}
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	record, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := svc.GetByID(ctx, record.ID, alice); err != nil {
		t.Fatalf("owner fetch: %v", err)
	}
	if _, err := svc.GetByID(ctx, record.ID, admin); err != nil {
		t.Fatalf("admin fetch: %v", err)
	}
	if _, err := svc.GetByID(ctx, record.ID, bob); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-owner fetch must look like not-found, got %v", err)
	}
	if _, err := svc.GetByID(ctx, "unknown", alice); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id must be not-found, got %v", err)
	}
}

func TestUpdateStatusAdminOnly(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	record, err := svc.Append(ctx, testPayload(), alice)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, record.ID, StatusApproved, alice); !errors.Is(err, ErrForbidden) {
		t.Fatalf("owner must not move status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, record.ID, Status("escalated"), admin); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, record.ID, StatusUnderReview, admin)
	if err != nil {
		t.Fatalf("admin status update: %v", err)
	}
	if updated.Status != StatusUnderReview {
		t.Fatalf("expected under-review, got %s", updated.Status)
	}
}
