package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/restapi/restapitest"
	"github.com/bomsquad/shoplist/internal/service/aggregate"
)

func newTestReconciler(fake *restapitest.Fake) (*Reconciler, *cache.Cache) {
	c := cache.New()
	return NewReconciler(fake, c), c
}

func TestBeginEdit_Toggle(t *testing.T) {
	r, _ := newTestReconciler(restapitest.New())

	r.BeginEdit(1, FieldQuantity, int64(2))
	if id, editing := r.Editing(FieldQuantity); !editing || id != 1 {
		t.Fatalf("after first click: editing=%v id=%d", editing, id)
	}

	// Same row again closes the editor.
	r.BeginEdit(1, FieldQuantity, int64(2))
	if _, editing := r.Editing(FieldQuantity); editing {
		t.Error("second click on the same row should exit edit mode")
	}
}

func TestBeginEdit_SingleRowPerField(t *testing.T) {
	r, _ := newTestReconciler(restapitest.New())

	r.BeginEdit(1, FieldQuantity, int64(2))
	r.BeginEdit(2, FieldQuantity, int64(3))

	id, editing := r.Editing(FieldQuantity)
	if !editing || id != 2 {
		t.Errorf("editing=%v id=%d, want row 2 only", editing, id)
	}
	if got := r.PendingValue(FieldQuantity); got != int64(3) {
		t.Errorf("pending = %v, want the new row's current value", got)
	}
}

func TestEditSlots_AreIndependent(t *testing.T) {
	r, _ := newTestReconciler(restapitest.New())

	r.BeginEdit(1, FieldQuantity, int64(2))
	r.BeginEdit(2, FieldLocation, []string{"Box 3"})

	if id, editing := r.Editing(FieldQuantity); !editing || id != 1 {
		t.Errorf("quantity slot lost: editing=%v id=%d", editing, id)
	}
	if id, editing := r.Editing(FieldLocation); !editing || id != 2 {
		t.Errorf("location slot: editing=%v id=%d", editing, id)
	}
}

func TestCancel_ClearsWithoutServerCall(t *testing.T) {
	fake := restapitest.New()
	r, _ := newTestReconciler(fake)

	r.BeginEdit(1, FieldQuantity, int64(2))
	r.ChangeValue(FieldQuantity, int64(9))
	r.Cancel(FieldQuantity)

	if _, editing := r.Editing(FieldQuantity); editing {
		t.Error("cancel left the slot editing")
	}
	if r.PendingValue(FieldQuantity) != nil {
		t.Error("cancel left a pending value")
	}
	if fake.Calls("UpdateQuantity") != 0 {
		t.Error("cancel must not touch the server")
	}
}

func TestSubmitQuantity_Success(t *testing.T) {
	var got *dto.UpdateQuantityRequest
	fake := restapitest.New()
	fake.UpdateQuantityFn = func(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error {
		got = req
		return nil
	}
	r, c := newTestReconciler(fake)

	// A cached snapshot that the submit must invalidate.
	listKey := cache.NewKey(constants.ResourceShoppingList)
	_, _ = c.Get(context.Background(), listKey, func(ctx context.Context) (interface{}, error) {
		return "snapshot", nil
	})

	snapshot := aggregate.Aggregate(restapitest.SynthEntries())

	r.BeginEdit(restapitest.FixtureResistor.ID, FieldQuantity, int64(2))
	r.ChangeValue(FieldQuantity, int64(5))

	err := r.SubmitQuantity(context.Background(), snapshot, restapitest.FixtureResistor.ID, restapitest.FixtureModuleA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil {
		t.Fatal("no update request sent")
	}
	if got.Quantity != 5 || got.ModulePK != restapitest.FixtureModuleA.ID || got.BomItemPK != 11 {
		t.Errorf("request = %+v", got)
	}
	if _, editing := r.Editing(FieldQuantity); editing {
		t.Error("edit state should clear after submit")
	}
	if _, ok := c.Peek(listKey); ok {
		t.Error("submit must invalidate the shopping-list cache")
	}
}

func TestSubmitQuantity_MissingBomItemRef(t *testing.T) {
	fake := restapitest.New()
	r, _ := newTestReconciler(fake)

	snapshot := aggregate.Aggregate(restapitest.SynthEntries())

	// The capacitor exists only in module A; module B has no mapping.
	r.BeginEdit(restapitest.FixtureCapacitor.ID, FieldQuantity, int64(1))

	err := r.SubmitQuantity(context.Background(), snapshot, restapitest.FixtureCapacitor.ID, restapitest.FixtureModuleB.ID)
	if !errors.Is(err, constants.ErrMissingBomItemRef) {
		t.Fatalf("expected ErrMissingBomItemRef, got %v", err)
	}
	if fake.Calls("UpdateQuantity") != 0 {
		t.Error("no request may be sent without a bom item reference")
	}
	if _, editing := r.Editing(FieldQuantity); editing {
		t.Error("edit state should clear after a failed submit")
	}
}

func TestSubmitQuantity_FailureRestoresNothing(t *testing.T) {
	fake := restapitest.New()
	fake.UpdateQuantityFn = func(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error {
		return errors.New("network down")
	}
	r, c := newTestReconciler(fake)

	listKey := cache.NewKey(constants.ResourceShoppingList)
	_, _ = c.Get(context.Background(), listKey, func(ctx context.Context) (interface{}, error) {
		return "snapshot", nil
	})

	snapshot := aggregate.Aggregate(restapitest.SynthEntries())
	r.BeginEdit(restapitest.FixtureResistor.ID, FieldQuantity, int64(2))
	r.ChangeValue(FieldQuantity, int64(5))

	err := r.SubmitQuantity(context.Background(), snapshot, restapitest.FixtureResistor.ID, restapitest.FixtureModuleA.ID)
	if err == nil {
		t.Fatal("expected the failure to propagate")
	}
	if _, ok := c.Peek(listKey); !ok {
		t.Error("a failed submit must not invalidate caches")
	}
	if _, editing := r.Editing(FieldQuantity); editing {
		t.Error("edit state should clear after a failed submit")
	}
}

func TestSubmitQuantity_SecondSubmitIgnoredWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	fake := restapitest.New()
	fake.UpdateQuantityFn = func(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error {
		close(entered)
		<-release
		return nil
	}
	r, _ := newTestReconciler(fake)

	snapshot := aggregate.Aggregate(restapitest.SynthEntries())
	r.BeginEdit(restapitest.FixtureResistor.ID, FieldQuantity, int64(2))
	r.ChangeValue(FieldQuantity, int64(5))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.SubmitQuantity(context.Background(), snapshot, restapitest.FixtureResistor.ID, restapitest.FixtureModuleA.ID)
	}()

	<-entered
	err := r.SubmitQuantity(context.Background(), snapshot, restapitest.FixtureResistor.ID, restapitest.FixtureModuleA.ID)
	if !errors.Is(err, constants.ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	if fake.Calls("UpdateQuantity") != 1 {
		t.Errorf("server saw %d updates, want 1", fake.Calls("UpdateQuantity"))
	}
}
