package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container collects the middleware chain for one handler. Add in order,
// then GetAllAndClear hands the chain off and resets for the next handler.
type Container struct {
	middlewares huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.middlewares = append(c.middlewares, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.middlewares
	c.middlewares = nil
	return mws
}
