package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/cache"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/logger"
	"github.com/bomsquad/shoplist/internal/pkg/restapi"
	"github.com/bomsquad/shoplist/internal/service/aggregate"
)

// Field is an editable field type. Each field type has its own edit slot, so
// a quantity edit and a location edit can coexist, but never two quantity
// edits.
type Field string

const (
	FieldQuantity Field = "quantity"

	// FieldLocation has no submit path of its own: the pending location is
	// read back via PendingValue and attached to the migrate call, which is
	// when locations reach the server.
	FieldLocation Field = "location"
)

// State of one edit slot.
type State int

const (
	StateViewing State = iota
	StateEditing
	StateSubmitting
)

type slot struct {
	state   State
	rowID   domain.ComponentID
	pending interface{}
}

// Reconciler tracks which row is being edited per field type and the pending
// value awaiting submission. Submits mutate through the API and invalidate
// the cached reads the mutation makes stale; local state is never updated
// ahead of server confirmation.
type Reconciler struct {
	client   restapi.Client
	cache    *cache.Cache
	validate *validator.Validate

	mx    sync.Mutex
	slots map[Field]*slot
}

func NewReconciler(client restapi.Client, c *cache.Cache) *Reconciler {
	return &Reconciler{
		client:   client,
		cache:    c,
		validate: validator.New(),
		slots: map[Field]*slot{
			FieldQuantity: {},
			FieldLocation: {},
		},
	}
}

// BeginEdit targets a row for editing. Clicking the row already being edited
// toggles the editor closed; clicking a different row moves the single edit
// slot there and seeds the pending value from the row's current value.
func (r *Reconciler) BeginEdit(rowID domain.ComponentID, field Field, currentValue interface{}) {
	r.mx.Lock()
	defer r.mx.Unlock()

	s := r.slots[field]
	if s.state == StateSubmitting {
		logger.Warnf(context.TODO(), "begin edit ignored, submit in flight for %s row %d", field, s.rowID)
		return
	}

	if s.state == StateEditing && s.rowID == rowID {
		s.state = StateViewing
		s.rowID = 0
		s.pending = nil
		return
	}

	s.state = StateEditing
	s.rowID = rowID
	s.pending = currentValue
}

// ChangeValue replaces the pending value. Local only, nothing is sent.
func (r *Reconciler) ChangeValue(field Field, value interface{}) {
	r.mx.Lock()
	defer r.mx.Unlock()

	s := r.slots[field]
	if s.state != StateEditing {
		return
	}
	s.pending = value
}

// Editing reports the row currently in edit state for the field, if any.
func (r *Reconciler) Editing(field Field) (domain.ComponentID, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()

	s := r.slots[field]
	return s.rowID, s.state == StateEditing
}

// PendingValue returns the value awaiting submission for the field.
func (r *Reconciler) PendingValue(field Field) interface{} {
	r.mx.Lock()
	defer r.mx.Unlock()

	return r.slots[field].pending
}

// Cancel drops the edit without touching the server.
func (r *Reconciler) Cancel(field Field) {
	r.mx.Lock()
	defer r.mx.Unlock()

	s := r.slots[field]
	if s.state == StateSubmitting {
		return
	}
	s.state = StateViewing
	s.rowID = 0
	s.pending = nil
}

// SubmitQuantity sends the pending quantity for (component, module). The BOM
// line reference is resolved from the grouped snapshot; a missing mapping is
// a consistency bug and is reported loudly instead of silently dropping the
// edit. Edit state clears on completion either way, and a successful submit
// invalidates the shopping-list and total-price caches. A submit while one
// is already in flight is ignored.
func (r *Reconciler) SubmitQuantity(ctx context.Context, snapshot *aggregate.Result, componentID domain.ComponentID, moduleID domain.ModuleID) error {
	r.mx.Lock()
	s := r.slots[FieldQuantity]

	if s.state == StateSubmitting {
		r.mx.Unlock()
		logger.Warnf(ctx, "submit ignored, already in flight for row %d", s.rowID)
		return fmt.Errorf("component-%d: %w", componentID, constants.ErrSubmitInFlight)
	}
	if s.state != StateEditing || s.rowID != componentID {
		r.mx.Unlock()
		return fmt.Errorf("component-%d is not being edited: %w", componentID, constants.ErrValidation)
	}

	quantity, ok := s.pending.(int64)
	if !ok {
		r.mx.Unlock()
		return fmt.Errorf("pending value is not a quantity: %w", constants.ErrValidation)
	}

	s.state = StateSubmitting
	r.mx.Unlock()

	err := r.submitQuantity(ctx, snapshot, componentID, moduleID, quantity)

	r.mx.Lock()
	s.state = StateViewing
	s.rowID = 0
	s.pending = nil
	r.mx.Unlock()

	return err
}

func (r *Reconciler) submitQuantity(ctx context.Context, snapshot *aggregate.Result, componentID domain.ComponentID, moduleID domain.ModuleID, quantity int64) error {
	bomItemID, err := snapshot.BomItemRef(componentID, moduleID)
	if err != nil {
		if errors.Is(err, constants.ErrMissingBomItemRef) {
			logger.Errorf(ctx, "consistency bug: %s", err.Error())
		}
		return fmt.Errorf("snapshot.BomItemRef: %w", err)
	}

	req := &dto.UpdateQuantityRequest{
		ModulePK:  moduleID,
		BomItemPK: bomItemID,
		Quantity:  quantity,
	}
	if err = r.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), constants.ErrValidation)
	}

	if err = r.client.UpdateQuantity(ctx, componentID, req); err != nil {
		return fmt.Errorf("client.UpdateQuantity: %w", err)
	}

	r.cache.InvalidateFor(cache.MutationUpdateQuantity)
	return nil
}
