package memory

import (
	"context"
	"sync"

	"paws/internal/domain/entity"
)

// ChangeFeed is a hand-cranked feed for the development backend. Update
// events are injected through the Emit methods instead of arriving from a
// store.
type ChangeFeed struct {
	mu              sync.RWMutex
	petFn           func(context.Context, *entity.Pet)
	appointmentFn   func(context.Context, *entity.Appointment)
	petCtx          context.Context
	appointmentCtx  context.Context
}

func NewChangeFeed() *ChangeFeed {
	return &ChangeFeed{}
}

func (f *ChangeFeed) WatchPets(ctx context.Context, fn func(context.Context, *entity.Pet)) {
	f.mu.Lock()
	f.petFn = fn
	f.petCtx = ctx
	f.mu.Unlock()
}

func (f *ChangeFeed) WatchAppointments(ctx context.Context, fn func(context.Context, *entity.Appointment)) {
	f.mu.Lock()
	f.appointmentFn = fn
	f.appointmentCtx = ctx
	f.mu.Unlock()
}

// EmitPetUpdate delivers a pet update to the registered watcher, if any.
func (f *ChangeFeed) EmitPetUpdate(pet *entity.Pet) {
	f.mu.RLock()
	fn, ctx := f.petFn, f.petCtx
	f.mu.RUnlock()

	if fn == nil || ctx.Err() != nil {
		return
	}
	fn(ctx, pet)
}

// EmitAppointmentUpdate delivers an appointment update to the registered
// watcher, if any.
func (f *ChangeFeed) EmitAppointmentUpdate(appointment *entity.Appointment) {
	f.mu.RLock()
	fn, ctx := f.appointmentFn, f.appointmentCtx
	f.mu.RUnlock()

	if fn == nil || ctx.Err() != nil {
		return
	}
	fn(ctx, appointment)
}
