package queue

import (
	"todo-api/internal/domain/model"
)

// Worker is the part of pkg/sqs.Worker the health check inspects
type Worker interface {
	IsRunning() bool
	QueueName() string
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker Worker)
}
