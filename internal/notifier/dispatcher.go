package notifier

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// Queue is what the payment handler sees: a non-blocking submission of a
// paid order for notification. Enqueue reports whether the job was accepted.
type Queue interface {
	Enqueue(orderID string) bool
}

// orderSource is the slice of the store the dispatcher needs.
type orderSource interface {
	GetOrder(ctx context.Context, id string) (models.Order, error)
	GetCustomer(ctx context.Context, id primitive.ObjectID) (models.Customer, error)
}

type job struct {
	id      string
	orderID string
}

// Dispatcher runs the notification fan-out off the request path. Jobs are
// queued on a buffered channel and processed by a single worker; the two
// notifications for a job run concurrently and fail independently. A full
// queue drops the job — losing a notification never blocks or fails the
// payment flow.
type Dispatcher struct {
	jobs   chan job
	source orderSource
	sender Sender

	startOnce sync.Once
}

func NewDispatcher(source orderSource, sender Sender, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		jobs:   make(chan job, buffer),
		source: source,
		sender: sender,
	}
}

// Start launches the worker goroutine. It returns immediately; the worker
// exits when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go d.run(ctx)
	})
}

func (d *Dispatcher) Enqueue(orderID string) bool {
	j := job{id: uuid.NewString(), orderID: orderID}
	select {
	case d.jobs <- j:
		return true
	default:
		log.Printf("[NOTIFY] [WARN] queue full, dropping job %s for order %s", j.id, orderID)
		return false
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			d.fanOut(ctx, j)
		}
	}
}

func (d *Dispatcher) fanOut(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[NOTIFY] [ERROR] job %s panic recovered: %v", j.id, r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	order, err := d.source.GetOrder(sendCtx, j.orderID)
	if err != nil {
		log.Printf("[NOTIFY] [ERROR] job %s: order %s not loadable: %v", j.id, j.orderID, err)
		return
	}
	customer, err := d.source.GetCustomer(sendCtx, order.CustomerID)
	if err != nil {
		log.Printf("[NOTIFY] [ERROR] job %s: customer for order %s not loadable: %v", j.id, j.orderID, err)
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := d.sender.SendCustomerConfirmation(sendCtx, order, customer); err != nil {
			log.Printf("[NOTIFY] [ERROR] job %s: customer email failed: %v", j.id, err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := d.sender.SendAdminAlert(sendCtx, order, customer); err != nil {
			log.Printf("[NOTIFY] [ERROR] job %s: admin alert failed: %v", j.id, err)
		}
	}()

	wg.Wait()
	log.Printf("[NOTIFY] job %s completed for order %s", j.id, j.orderID)
}
