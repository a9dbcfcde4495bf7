package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/FelipeAraujoBS/weather-monitoring-system/services/container"
)

// BaseController is the interface shared by all controllers.
type BaseController interface {
	GetContainer() *container.ServiceContainer
	GetContext() *gin.Context
}

// BaseControllerImpl is the common controller implementation.
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer implements BaseController.
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext implements BaseController.
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory builds request-scoped controllers around the shared
// service container.
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory creates a new controller factory.
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}
