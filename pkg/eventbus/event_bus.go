package eventbus

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// EventBus is a synchronous in-process publisher. Handlers are plain
// functions; an event is delivered to every handler whose parameter types
// match the published arguments.
type EventBus interface {
	Publish(args ...interface{})
	Subscribe(handler interface{})
	Unsubscribe(handler interface{})
	SubscribersCount() int
}

type publisherImpl struct {
	log         *logrus.Logger
	mu          sync.RWMutex
	subscribers []reflect.Value
}

func NewEventPublisher(log *logrus.Logger) EventBus {
	return &publisherImpl{log: log}
}

func matchSignature(handler reflect.Value, args []interface{}) bool {
	t := handler.Type()
	if t.Kind() != reflect.Func || t.NumIn() != len(args) {
		return false
	}
	for i, arg := range args {
		paramType := t.In(i)
		if arg == nil {
			if paramType.Kind() != reflect.Interface && paramType.Kind() != reflect.Ptr {
				return false
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if argType != paramType && !(paramType.Kind() == reflect.Interface && argType.Implements(paramType)) {
			return false
		}
	}
	return true
}

func (p *publisherImpl) Publish(args ...interface{}) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	delivered := 0
	for _, handler := range p.subscribers {
		if !matchSignature(handler, args) {
			continue
		}
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(handler.Type().In(i))
			} else {
				in[i] = reflect.ValueOf(arg)
			}
		}
		handler.Call(in)
		delivered++
	}
	if delivered == 0 {
		p.log.Warnf("eventbus.Publish: no matching subscribers for %T", first(args))
	}
}

func (p *publisherImpl) Subscribe(handler interface{}) {
	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Func {
		p.log.Errorf("eventbus.Subscribe: handler must be a func, got %T", handler)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, v)
}

func (p *publisherImpl) Unsubscribe(handler interface{}) {
	ptr := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.subscribers {
		if s.Pointer() == ptr {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}

func first(args []interface{}) interface{} {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
