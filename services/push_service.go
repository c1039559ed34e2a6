package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier is the delivery pipeline's view of push: fire-and-forget, never
// returns an error to the caller.
type Notifier interface {
	Notify(userID, kind, referenceID string)
}

// PushProvider publishes one rendered payload to a device endpoint.
type PushProvider interface {
	Publish(ctx context.Context, endpointARN, message string) error
}

// SNSProvider sends through AWS SNS platform endpoints.
type SNSProvider struct {
	Client *sns.Client
}

func (p *SNSProvider) Publish(ctx context.Context, endpointARN, message string) error {
	_, err := p.Client.Publish(ctx, &sns.PublishInput{
		TargetArn: aws.String(endpointARN),
		Message:   aws.String(message),
	})
	return err
}

// PushPayload is what the provider receives: a kind and a reference id,
// never message content.
type PushPayload struct {
	Kind        string `json:"kind"`
	ReferenceID string `json:"referenceId"`
}

type pushJob struct {
	userID      string
	kind        string
	referenceID string
}

// PushDispatcher hands notifications to the provider on a background worker,
// so provider latency never delays the send path. All failures (no device,
// provider error, full queue) are logged and swallowed: push is the fallback
// channel, durable storage is the guarantee.
type PushDispatcher struct {
	Devices  DeviceStore
	Provider PushProvider

	mu     sync.Mutex
	closed bool
	queue  chan pushJob
	wg     sync.WaitGroup
}

func NewPushDispatcher(devices DeviceStore, provider PushProvider) *PushDispatcher {
	d := &PushDispatcher{
		Devices:  devices,
		Provider: provider,
		queue:    make(chan pushJob, 256),
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for job := range d.queue {
			d.deliver(job)
		}
	}()

	return d
}

// Notify enqueues a notification. Non-blocking: if the queue is full, or the
// dispatcher has been closed, the notification is dropped with a log line.
func (d *PushDispatcher) Notify(userID, kind, referenceID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		log.Printf("⚠️ Push dispatcher closed, dropping %s notification for %s", kind, userID)
		return
	}

	select {
	case d.queue <- pushJob{userID: userID, kind: kind, referenceID: referenceID}:
	default:
		log.Printf("⚠️ Push queue full, dropping %s notification for %s", kind, userID)
	}
}

// Close stops accepting notifications and waits for the queue to drain.
func (d *PushDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *PushDispatcher) deliver(job pushJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	device, err := d.Devices.Get(ctx, job.userID)
	if err != nil {
		log.Printf("❌ Push lookup failed for %s: %v", job.userID, err)
		return
	}
	if device == nil {
		log.Printf("ℹ️ No registered device for %s, skipping %s push", job.userID, job.kind)
		return
	}

	payload, err := json.Marshal(PushPayload{Kind: job.kind, ReferenceID: job.referenceID})
	if err != nil {
		log.Printf("❌ Failed to marshal push payload: %v", err)
		return
	}

	if err := d.Provider.Publish(ctx, device.EndpointARN, string(payload)); err != nil {
		log.Printf("❌ Push delivery failed for %s: %v", job.userID, err)
		return
	}

	log.Printf("📲 Push %s delivered to %s", job.kind, job.userID)
}

// InitializeSNSClient builds the SNS client from the ambient AWS config.
func InitializeSNSClient(cfg aws.Config) *sns.Client {
	return sns.NewFromConfig(cfg)
}
