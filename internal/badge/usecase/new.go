package usecase

import (
	"sync"

	"campus-notify/internal/api"
	"campus-notify/internal/badge"
	"campus-notify/internal/event"
	"campus-notify/internal/view"
	"campus-notify/pkg/log"
)

// implReconciler implements badge.Reconciler.
type implReconciler struct {
	apiClient api.Client
	binding   *view.Binding
	logger    log.Logger

	// state is the only place badge counts live; it is replaced wholesale
	// under mu so a push and a poll can never interleave partial updates.
	mu    sync.RWMutex
	state badge.State

	// refreshing is the single-flight guard for Refresh.
	refreshMu  sync.Mutex
	refreshing bool

	observers []badge.Observer
}

// New creates a new badge Reconciler.
func New(apiClient api.Client, binding *view.Binding, logger log.Logger, observers ...badge.Observer) badge.Reconciler {
	return &implReconciler{
		apiClient: apiClient,
		binding:   binding,
		logger:    logger,
		state:     badge.State{ByType: map[event.Type]int{}},
		observers: observers,
	}
}
