package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/blues/lps/internal/logic"
	"github.com/panjf2000/ants/v2"
)

// Notifier 事件通知器，实现引擎的 Emitter 接口。
// 事件先落库再经协程池异步投递到 webhook，投递失败的
// 事件留在库里等调度任务重投。
type Notifier struct {
	eventLogic *logic.EventLogic
	webhookURL string
	pool       *ants.Pool
	client     *http.Client
}

// New 创建事件通知器。webhookURL 为空时事件只落库不投递。
func New(eventLogic *logic.EventLogic, webhookURL string, workers int) (*Notifier, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier pool: %w", err)
	}
	return &Notifier{
		eventLogic: eventLogic,
		webhookURL: webhookURL,
		pool:       pool,
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Emit 接收引擎事件：同步落库，异步投递
func (n *Notifier) Emit(evt *launchpad.Event) {
	record, err := n.eventLogic.SaveEvent(evt)
	if err != nil {
		logger.Error("Failed to save event %s: %v", evt.Type, err)
		return
	}
	if n.webhookURL == "" {
		return
	}
	if err := n.pool.Submit(func() { n.deliver(record.Id, evt.Type, evt.Attributes) }); err != nil {
		logger.Error("Failed to submit event %d to pool: %v", record.Id, err)
	}
}

// Redeliver 重投未成功的事件，由调度任务周期调用
func (n *Notifier) Redeliver(limit int) error {
	if n.webhookURL == "" {
		return nil
	}
	events, err := n.eventLogic.GetUnprocessedEvents(limit)
	if err != nil {
		return err
	}
	for _, evt := range events {
		var attrs map[string]string
		if err := json.Unmarshal([]byte(evt.Attributes), &attrs); err != nil {
			logger.Warn("Skipping event %d with bad attributes: %v", evt.Id, err)
			continue
		}
		id, eventType := evt.Id, evt.EventType
		if err := n.pool.Submit(func() { n.deliver(id, eventType, attrs) }); err != nil {
			return fmt.Errorf("failed to submit event %d to pool: %w", id, err)
		}
	}
	return nil
}

// deliver 投递单个事件，成功后标记已处理
func (n *Notifier) deliver(id int64, eventType string, attrs map[string]string) {
	payload, err := json.Marshal(map[string]interface{}{
		"event_type": eventType,
		"attributes": attrs,
	})
	if err != nil {
		logger.Error("Failed to marshal event %d: %v", id, err)
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.Warn("Failed to deliver event %d: %v", id, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Webhook rejected event %d: status %d", id, resp.StatusCode)
		return
	}
	if err := n.eventLogic.MarkProcessed(id); err != nil {
		logger.Error("Failed to mark event %d processed: %v", id, err)
	}
}

// Close 释放协程池
func (n *Notifier) Close() {
	n.pool.Release()
}
