package queue

import (
	"strconv"
	"sync"
	"todo-api/internal/domain/model"
)

// QueueHealthGateway reports the event consumers registered at startup.
// A disabled queue is healthy since events are then handled in-process.
type QueueHealthGateway struct {
	mutex    sync.RWMutex
	workers  map[string]Worker
	disabled bool
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway(enabled bool) *QueueHealthGateway {
	return &QueueHealthGateway{
		workers:  make(map[string]Worker),
		disabled: !enabled,
	}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker Worker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	if gateway.disabled {
		return component(model.StatusUp, map[string]string{"message": "Queue disabled, events delivered in-process"})
	}

	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return component(model.StatusUnknown, map[string]string{"message": "No workers registered", "workers_total": "0"})
	}

	details := make(map[string]string, len(gateway.workers)*2+3)
	down := 0
	for name, worker := range gateway.workers {
		state := model.StatusUp
		if !worker.IsRunning() {
			state = model.StatusDown
			down++
		}
		details[name+"_queue"] = worker.QueueName()
		details[name+"_status"] = string(state)
	}
	details["workers_total"] = strconv.Itoa(len(gateway.workers))
	details["workers_up"] = strconv.Itoa(len(gateway.workers) - down)
	details["workers_down"] = strconv.Itoa(down)

	if down > 0 {
		return component(model.StatusDown, details)
	}
	return component(model.StatusUp, details)
}

func component(status model.HealthStatus, details map[string]string) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: status, Details: details}
}
