package notification

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mobilecare/internal/api"
	"mobilecare/internal/model"
	"mobilecare/pkg/metrics"
)

// Backend is the slice of the platform client the workflow needs.
type Backend interface {
	FetchNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteNotifications(ctx context.Context, ids []string) error
	DeleteAllNotifications(ctx context.Context) error
}

// Workflow keeps the client's view of the remote notification list
// consistent across mutations by refetching after every successful
// write instead of patching local state. The list is authoritative only
// right after a fetch; a mutation marks it stale until the next one.
//
// One mutex serializes all operations, so a delete can never race a
// refetch that still reflects pre-delete state.
type Workflow struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger

	items    []model.Notification
	selected map[string]struct{}
}

func NewWorkflow(backend Backend, logger *zap.Logger) *Workflow {
	return &Workflow{
		backend:  backend,
		logger:   logger,
		selected: make(map[string]struct{}),
	}
}

// Items returns a copy of the current list projection.
func (w *Workflow) Items() []model.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.Notification, len(w.items))
	copy(out, w.items)
	return out
}

// Selected returns the checked ids, sorted for stable output.
func (w *Workflow) Selected() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedIDs()
}

func (w *Workflow) selectedIDs() []string {
	ids := make([]string, 0, len(w.selected))
	for id := range w.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FetchAll replaces the list with the backend's current set and resets
// the selection. On failure the previous list stays displayed and the
// error is returned to the caller instead of vanishing into a log.
func (w *Workflow) FetchAll(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.refetch(ctx)
}

// refetch must be called with the lock held.
func (w *Workflow) refetch(ctx context.Context) error {
	items, err := w.backend.FetchNotifications(ctx)
	if err != nil {
		w.logger.Error("Failed to fetch notifications", zap.Error(err))
		return err
	}
	w.items = items
	w.selected = make(map[string]struct{})
	return nil
}

// ToggleSelect flips membership of id in the selection. Ids not in the
// current list are ignored, keeping the selection a subset of displayed
// notifications. Pure client-side, no network.
func (w *Workflow) ToggleSelect(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.contains(id) {
		return
	}
	if _, ok := w.selected[id]; ok {
		delete(w.selected, id)
	} else {
		w.selected[id] = struct{}{}
	}
}

func (w *Workflow) contains(id string) bool {
	for _, n := range w.items {
		if n.ID == id {
			return true
		}
	}
	return false
}

// MarkAsRead marks one unread notification read. Already-read items are
// a guarded no-op. The mutation's own failure is surfaced before any
// refetch: the refetch confirms the new state, it is not the success
// signal.
func (w *Workflow) MarkAsRead(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var target *model.Notification
	for i := range w.items {
		if w.items[i].ID == id {
			target = &w.items[i]
			break
		}
	}
	if target == nil {
		return &api.ValidationError{Message: "unknown notification id"}
	}
	if target.Read {
		return nil
	}

	if err := w.backend.MarkNotificationRead(ctx, id); err != nil {
		metrics.IncrementNotificationMutation("mark_read", "failed")
		w.logger.Error("Failed to mark notification read", zap.String("id", id), zap.Error(err))
		return err
	}
	metrics.IncrementNotificationMutation("mark_read", "success")

	return w.refetch(ctx)
}

// DeleteOne removes a single notification, then refetches.
func (w *Workflow) DeleteOne(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.backend.DeleteNotification(ctx, id); err != nil {
		metrics.IncrementNotificationMutation("delete_one", "failed")
		w.logger.Error("Failed to delete notification", zap.String("id", id), zap.Error(err))
		return err
	}
	metrics.IncrementNotificationMutation("delete_one", "success")

	return w.refetch(ctx)
}

// DeleteSelected bulk-deletes the checked ids in one request. An empty
// selection is a validation error and never reaches the network. The
// selection is cleared once the request has been issued, win or lose.
func (w *Workflow) DeleteSelected(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.selected) == 0 {
		return &api.ValidationError{Message: "no notifications selected"}
	}

	ids := w.selectedIDs()
	err := w.backend.DeleteNotifications(ctx, ids)
	w.selected = make(map[string]struct{})
	if err != nil {
		metrics.IncrementNotificationMutation("delete_selected", "failed")
		w.logger.Error("Failed to delete selected notifications",
			zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	metrics.IncrementNotificationMutation("delete_selected", "success")

	return w.refetch(ctx)
}

// DeleteAll removes every notification belonging to the signed-in
// user, then refetches.
func (w *Workflow) DeleteAll(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.backend.DeleteAllNotifications(ctx)
	w.selected = make(map[string]struct{})
	if err != nil {
		metrics.IncrementNotificationMutation("delete_all", "failed")
		w.logger.Error("Failed to delete all notifications", zap.Error(err))
		return err
	}
	metrics.IncrementNotificationMutation("delete_all", "success")

	return w.refetch(ctx)
}
