package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VineethSendilraj/COPilot/models"
)

// Resource names the three synchronized collections.
type Resource string

const (
	ResourceIncidents Resource = "incidents"
	ResourceAlerts    Resource = "alerts"
	ResourceOfficers  Resource = "officers"
)

// defaultPollInterval is the fallback refresh cadence used when push
// notifications are delayed or missed.
const defaultPollInterval = 2 * time.Second

// SyncEngine keeps an in-memory read-through cache of the officers,
// incidents, and alerts collections. Firestore snapshot listeners trigger a
// wholesale refetch of the changed collection, with a fixed-interval poll as
// a redundancy path. Every fetch takes a sequence number before the read and
// a commit is rejected when a newer fetch has already been committed, so a
// slow fetch cannot overwrite fresher data. A failed fetch logs and leaves
// the previous state in place.
type SyncEngine struct {
	incidentService *IncidentService
	alertService    *AlertService
	officerService  *OfficerService
	firebaseService *FirebaseService

	pollInterval time.Duration

	mu        sync.RWMutex
	incidents []*models.Incident
	alerts    []*models.Alert
	officers  []*models.Officer
	committed map[Resource]uint64

	seq uint64

	// broadcaster is invoked after every committed change, outside the
	// cache lock. Optional.
	broadcaster func(resource Resource, payload interface{})

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSyncEngine(firebaseService *FirebaseService, incidentService *IncidentService, alertService *AlertService, officerService *OfficerService) *SyncEngine {
	return &SyncEngine{
		incidentService: incidentService,
		alertService:    alertService,
		officerService:  officerService,
		firebaseService: firebaseService,
		pollInterval:    defaultPollInterval,
		committed:       make(map[Resource]uint64),
	}
}

// SetBroadcaster registers the callback invoked on every committed change.
// Must be called before Start.
func (e *SyncEngine) SetBroadcaster(fn func(resource Resource, payload interface{})) {
	e.broadcaster = fn
}

// Start performs the initial full fetch of every resource, then launches
// the snapshot listeners and the fallback poller. The initial fetch is the
// only blocking load; an error there aborts startup.
func (e *SyncEngine) Start(ctx context.Context) error {
	for _, resource := range []Resource{ResourceOfficers, ResourceIncidents, ResourceAlerts} {
		if err := e.refetch(ctx, resource); err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	for _, resource := range []Resource{ResourceOfficers, ResourceIncidents, ResourceAlerts} {
		e.wg.Add(1)
		go e.listen(runCtx, resource)
	}

	e.wg.Add(1)
	go e.poll(runCtx)

	return nil
}

// Stop tears down the listeners and the poller and waits for them to exit.
func (e *SyncEngine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
}

// Snapshot returns the currently committed collections.
func (e *SyncEngine) Snapshot() ([]*models.Incident, []*models.Alert, []*models.Officer) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.incidents, e.alerts, e.officers
}

// listen consumes Firestore change notifications for one collection and
// refetches it wholesale on every notification.
func (e *SyncEngine) listen(ctx context.Context, resource Resource) {
	defer e.wg.Done()

	snapshots := e.firebaseService.Firestore.Collection(string(resource)).Snapshots(ctx)
	defer snapshots.Stop()

	// The first snapshot mirrors the initial fetch already done in Start;
	// consume it without a redundant refetch.
	if _, err := snapshots.Next(); err != nil {
		if ctx.Err() == nil {
			log.Printf("[sync] %s listener failed: %v", resource, err)
		}
		return
	}

	for {
		if _, err := snapshots.Next(); err != nil {
			if ctx.Err() == nil {
				log.Printf("[sync] %s listener failed: %v", resource, err)
			}
			return
		}
		if err := e.refetch(ctx, resource); err != nil && ctx.Err() == nil {
			log.Printf("[sync] %s refetch after change failed, keeping stale data: %v", resource, err)
		}
	}
}

// poll refreshes every resource on a fixed interval as a redundancy path.
func (e *SyncEngine) poll(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, resource := range []Resource{ResourceOfficers, ResourceIncidents, ResourceAlerts} {
				if err := e.refetch(ctx, resource); err != nil && ctx.Err() == nil {
					log.Printf("[sync] %s poll failed, keeping stale data: %v", resource, err)
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// refetch reads one collection in full and commits it under the sequence
// number taken before the read started.
func (e *SyncEngine) refetch(ctx context.Context, resource Resource) error {
	seq := atomic.AddUint64(&e.seq, 1)

	var payload interface{}
	switch resource {
	case ResourceIncidents:
		incidents, err := e.incidentService.GetIncidents(ctx)
		if err != nil {
			return err
		}
		payload = incidents
	case ResourceAlerts:
		alerts, err := e.alertService.GetAlerts(ctx)
		if err != nil {
			return err
		}
		payload = alerts
	case ResourceOfficers:
		officers, err := e.officerService.GetOfficers(ctx)
		if err != nil {
			return err
		}
		payload = officers
	}

	e.commit(resource, seq, payload)
	return nil
}

// commit replaces a resource's collection wholesale if no newer fetch has
// been committed since seq was taken. Returns whether the data was applied.
func (e *SyncEngine) commit(resource Resource, seq uint64, payload interface{}) bool {
	e.mu.Lock()
	if seq <= e.committed[resource] {
		e.mu.Unlock()
		log.Printf("[sync] dropping stale %s fetch (seq %d <= %d)", resource, seq, e.committed[resource])
		return false
	}
	e.committed[resource] = seq

	switch data := payload.(type) {
	case []*models.Incident:
		e.incidents = data
	case []*models.Alert:
		e.alerts = data
	case []*models.Officer:
		e.officers = data
	}
	e.mu.Unlock()

	if e.broadcaster != nil {
		e.broadcaster(resource, payload)
	}
	return true
}
