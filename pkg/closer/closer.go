package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Closer обеспечивает упорядоченное закрытие ресурсов приложения.
type Closer struct {
	funcs         []Func
	mu            sync.Mutex
	once          sync.Once
	forcedTimeout time.Duration
}

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// NewCloser создает новый экземпляр Closer.
// forcedTimeout — время, отводимое на принудительное закрытие ресурсов,
// оставшихся после отмены контекста в Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout == 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add добавляет функцию в список закрытия.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close последовательно запускает зарегистрированные функции в порядке LIFO.
// Если контекст отменяется до завершения, оставшиеся функции получают
// собственный контекст с таймаутом forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var errs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			select {
			case <-ctx.Done():
				forcedCtx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
				for j := i; j >= 0; j-- {
					if ferr := funcs[j](forcedCtx); ferr != nil {
						errs = append(errs, fmt.Sprintf("[FORCED] %v", ferr))
					}
				}
				cancel()
				i = -1
			default:
				if cerr := funcs[i](ctx); cerr != nil {
					errs = append(errs, fmt.Sprintf("[!] %v", cerr))
				}
			}
		}

		if len(errs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
		}
	})

	return err
}
