package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// BreakerPublisher 在熔断器后面发布消息，Broker不可用时快速失败，不拖慢下单
type BreakerPublisher struct {
	pub Publisher
	cb  *circuitbreaker.CircuitBreaker
}

// NewBreakerPublisher 连续失败5次熔断，openTimeout后放行一个探测请求
func NewBreakerPublisher(pub Publisher, openTimeout time.Duration) *BreakerPublisher {
	cb := circuitbreaker.NewCircuitBreaker("mq-publisher", circuitbreaker.Config{
		Timeout: openTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.L().Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return &BreakerPublisher{pub: pub, cb: cb}
}

func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	return p.cb.Execute(func() error {
		return p.pub.Publish(ctx, routingKey, message)
	})
}

// State 熔断器当前状态
func (p *BreakerPublisher) State() circuitbreaker.State {
	return p.cb.State()
}
