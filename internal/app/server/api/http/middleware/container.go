package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type humaMiddleware = func(ctx huma.Context, next func(huma.Context))

// Container collects huma middlewares for the next handler being built.
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add appends middlewares in call order.
func (mc *Container) Add(mws ...humaMiddleware) *Container {
	mc.Middlewares = append(mc.Middlewares, mws...)
	return mc
}

// Take отдает накопленные мидлвари и очищает контейнер для следующего хендлера
func (mc *Container) Take() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
